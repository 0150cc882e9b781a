package processor

import (
	"bufio"
	"context"
	"errors"
	"fmt"

	"codeberg.org/snonux/vocabquiz/internal/batch"
	"codeberg.org/snonux/vocabquiz/internal/export"
	"codeberg.org/snonux/vocabquiz/internal/quiz"
)

// AnswerPrompt is shown before each answer in terminal mode
const AnswerPrompt = "輸入中文意思"

// RunTerminal asks for every answer on the terminal, then grades and
// exports the session
func (p *Processor) RunTerminal(ctx context.Context) error {
	s, err := p.StartSession(ctx)
	if err != nil {
		return err
	}
	if s.Len() == 0 {
		fmt.Fprintf(p.out, "The word bank %s has no words.\n", p.loader.Source())
		return nil
	}

	fmt.Fprintf(p.out, "\nQuiz with %d words. Press Enter to leave an answer blank.\n\n", s.Len())

	scanner := bufio.NewScanner(p.in)
	answers := make([]string, s.Len())
	for _, w := range s.Words() {
		fmt.Fprintf(p.out, "%d. %s (%s): ", w.Index+1, w.Word, AnswerPrompt)
		if !scanner.Scan() {
			break
		}
		answers[w.Index] = scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read answers: %w", err)
	}

	return p.gradeAndExport(ctx, s, quiz.AnswersFromSlice(answers))
}

// RunBatch grades the answers file named by the flags against a new session
func (p *Processor) RunBatch(ctx context.Context) error {
	sheet, err := batch.ReadAnswersFile(p.flags.AnswersFile)
	if err != nil {
		return err
	}

	s, err := p.StartSession(ctx)
	if err != nil {
		return err
	}
	if s.Len() == 0 {
		fmt.Fprintf(p.out, "The word bank %s has no words.\n", p.loader.Source())
		return nil
	}
	if sheet.Len() < s.Len() {
		fmt.Fprintf(p.out, "Note: %d answers for %d words, the rest count as blank\n", sheet.Len(), s.Len())
	}

	return p.gradeAndExport(ctx, s, sheet.For(s.Words()))
}

func (p *Processor) gradeAndExport(ctx context.Context, s *quiz.Session, answers quiz.AnswerLookup) error {
	fmt.Fprintf(p.out, "\nLooking up reference translations...\n")

	results, err := p.Grade(ctx, s, answers, p.printResult)
	if err != nil {
		return err
	}

	fmt.Fprintf(p.out, "\n=== Quiz Summary ===\n%s\n====================\n", quiz.Summarize(results))

	paths, err := p.ExportAll(s)
	if errors.Is(err, export.ErrNoResults) {
		fmt.Fprintln(p.out, "No results to download.")
		return nil
	}
	for _, path := range paths {
		fmt.Fprintf(p.out, "Saved: %s\n", path)
	}
	return err
}

func (p *Processor) printResult(s *quiz.Session, index int, r quiz.GradedResult) {
	mark := ""
	if r.Matches() {
		mark = " ✓"
	}
	fmt.Fprintf(p.out, "\n%d/%d %s\n", index+1, s.Len(), r.Word)
	fmt.Fprintf(p.out, "  ➜ 你的答案：%s\n", r.StudentAnswer)
	fmt.Fprintf(p.out, "  ➜ 參考中文：%s%s\n", r.ReferenceTranslation, mark)
}
