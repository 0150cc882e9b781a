package gui

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/vocabquiz/internal/export"
	"codeberg.org/snonux/vocabquiz/internal/quiz"
	"codeberg.org/snonux/vocabquiz/internal/wordbank"
)

// Notices shown to the user
const (
	AnswerPlaceholder = "輸入中文意思"
	LoadFailedNotice  = "Failed to load word bank. Check filenames."
	EmptyBankNotice   = "The word bank has no words."
	NoResultsNotice   = "No results to download."
)

// onStart draws a new session in the background. Start stays disabled
// while loading and while a session is being graded.
func (a *Application) onStart() {
	a.startButton.Disable()
	a.statusLabel.SetText("Loading word bank...")

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		s, err := a.service.StartSession(a.ctx)
		fyne.Do(func() {
			a.startButton.Enable()
			if err != nil {
				a.showLoadError(err)
				return
			}
			a.showSession(s)
		})
	}()
}

func (a *Application) showLoadError(err error) {
	a.statusLabel.SetText(noticeFor(err))
	dialog.ShowInformation("Notice", noticeFor(err), a.window)
}

// showSession replaces the word rows with the words of s
func (a *Application) showSession(s *quiz.Session) {
	a.mu.Lock()
	a.session = s
	a.mu.Unlock()

	a.rows = a.rows[:0]
	a.rowsBox.RemoveAll()
	a.downloadButton.Disable()

	if s.Len() == 0 {
		a.submitButton.Disable()
		a.statusLabel.SetText(EmptyBankNotice)
		dialog.ShowInformation("Notice", EmptyBankNotice, a.window)
		return
	}

	for _, w := range s.Words() {
		row := &wordRow{
			label:  widget.NewLabel(rowLabel(w)),
			entry:  widget.NewEntry(),
			result: widget.NewLabel(""),
		}
		row.entry.SetPlaceHolder(AnswerPlaceholder)
		row.result.Wrapping = fyne.TextWrapWord
		row.result.Hide()

		a.rows = append(a.rows, row)
		a.rowsBox.Add(container.NewVBox(
			container.NewBorder(nil, nil, row.label, nil, row.entry),
			row.result,
		))
	}
	a.rowsBox.Refresh()

	a.submitButton.Enable()
	a.statusLabel.SetText(fmt.Sprintf("%d words drawn. Type your answers and press Submit.", s.Len()))
}

// onSubmit grades the current session with the typed answers
func (a *Application) onSubmit() {
	s := a.currentSession()
	if s == nil || s.Phase() != quiz.PhaseLoaded {
		return
	}

	answers := make([]string, len(a.rows))
	for i, row := range a.rows {
		answers[i] = row.entry.Text
		row.entry.Disable()
	}
	a.submitButton.Disable()
	a.startButton.Disable()
	a.statusLabel.SetText("Looking up reference translations...")

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		results, err := a.service.Grade(a.ctx, s, quiz.AnswersFromSlice(answers), func(gs *quiz.Session, i int, r quiz.GradedResult) {
			fyne.Do(func() { a.showResult(gs, i, r) })
		})
		fyne.Do(func() { a.finishGrading(s, results, err) })
	}()
}

// showResult fills in the result row of word i while s is still shown
func (a *Application) showResult(s *quiz.Session, i int, r quiz.GradedResult) {
	if s != a.currentSession() || i < 0 || i >= len(a.rows) {
		return
	}
	row := a.rows[i]
	row.result.SetText(formatResult(r))
	row.result.Show()
	a.statusLabel.SetText(fmt.Sprintf("Graded %d of %d", i+1, s.Len()))
}

func (a *Application) finishGrading(s *quiz.Session, results []quiz.GradedResult, err error) {
	a.startButton.Enable()
	if s != a.currentSession() {
		return
	}
	if err != nil {
		a.statusLabel.SetText(err.Error())
		return
	}
	a.downloadButton.Enable()
	a.statusLabel.SetText(quiz.Summarize(results).String())
}

// onDownload saves the PDF of the current results
func (a *Application) onDownload() {
	path, err := a.service.Download(a.currentSession())
	if err != nil {
		a.statusLabel.SetText(noticeFor(err))
		dialog.ShowInformation("Notice", noticeFor(err), a.window)
		return
	}
	a.statusLabel.SetText("Saved " + path)
	dialog.ShowInformation("Download", fmt.Sprintf("Results saved to\n%s", path), a.window)
}

func (a *Application) currentSession() *quiz.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

func rowLabel(w quiz.SessionWord) string {
	return fmt.Sprintf("%d. %s", w.Index+1, w.Word)
}

func formatResult(r quiz.GradedResult) string {
	text := fmt.Sprintf("➜ 你的答案：%s\n➜ 參考中文：%s", r.StudentAnswer, r.ReferenceTranslation)
	if r.Matches() {
		text += " ✓"
	}
	return text
}

// noticeFor maps an error to the message shown to the user
func noticeFor(err error) string {
	var loadErr *wordbank.LoadError
	switch {
	case errors.As(err, &loadErr):
		return LoadFailedNotice
	case errors.Is(err, export.ErrNoResults), errors.Is(err, quiz.ErrNotGraded):
		return NoResultsNotice
	default:
		return err.Error()
	}
}
