// Package batch reads prepared answer sheets for non-interactive grading.
package batch

import (
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/vocabquiz/internal/quiz"
)

// Sheet holds the answers read from an answers file.
//
// Supported line formats:
//   - "answer": used for the next session word in order
//   - "word = answer": used for that word wherever it was drawn, when word
//     is one of the session words (case-insensitive); otherwise the whole
//     line is a positional answer
//   - "# ..." comment, ignored
//
// An empty line is a positional blank answer.
type Sheet struct {
	lines []sheetLine
}

type sheetLine struct {
	text   string
	word   string
	answer string
	keyed  bool
}

// ReadAnswersFile reads an answers file
func ReadAnswersFile(filename string) (*Sheet, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file: %w", err)
	}
	return ParseAnswers(string(content)), nil
}

// ParseAnswers parses answers file content
func ParseAnswers(content string) *Sheet {
	sheet := &Sheet{}

	for _, line := range splitLines(content) {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		l := sheetLine{text: trimmed}
		if word, answer, ok := strings.Cut(trimmed, "="); ok {
			if word = strings.TrimSpace(word); word != "" {
				l.word = strings.ToLower(word)
				l.answer = strings.TrimSpace(answer)
				l.keyed = true
			}
		}
		sheet.lines = append(sheet.lines, l)
	}

	return sheet
}

// Len returns the number of answers in the sheet
func (s *Sheet) Len() int {
	return len(s.lines)
}

// For returns the answer lookup for the words of a session. Keyed answers
// win over positional ones; positional answers fill the remaining words in
// session order.
func (s *Sheet) For(words []quiz.SessionWord) quiz.AnswerLookup {
	drawn := make(map[string]bool, len(words))
	for _, w := range words {
		drawn[strings.ToLower(w.Word)] = true
	}

	byWord := make(map[string]string)
	var positional []string
	for _, l := range s.lines {
		if l.keyed && drawn[l.word] {
			byWord[l.word] = l.answer
			continue
		}
		positional = append(positional, l.text)
	}

	answers := make([]string, len(words))
	next := 0
	for _, w := range words {
		if answer, ok := byWord[strings.ToLower(w.Word)]; ok {
			answers[w.Index] = answer
			continue
		}
		if next < len(positional) {
			answers[w.Index] = positional[next]
			next++
		}
	}
	return quiz.AnswersFromSlice(answers)
}

// splitLines splits on newlines, dropping carriage returns and the empty
// line after a trailing newline
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
