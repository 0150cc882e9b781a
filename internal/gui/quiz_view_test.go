package gui

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/vocabquiz/internal/export"
	"codeberg.org/snonux/vocabquiz/internal/quiz"
	"codeberg.org/snonux/vocabquiz/internal/wordbank"
)

type fakeService struct {
	manager     *quiz.Manager
	grade       func() ([]quiz.GradedResult, error)
	downloadErr error
	downloads   int
}

func (f *fakeService) StartSession(ctx context.Context) (*quiz.Session, error) {
	return nil, errors.New("not used")
}

func (f *fakeService) Grade(ctx context.Context, s *quiz.Session, answers quiz.AnswerLookup, progress quiz.ProgressFunc) ([]quiz.GradedResult, error) {
	if f.grade != nil {
		return f.grade()
	}
	return nil, errors.New("not used")
}

func (f *fakeService) Download(s *quiz.Session) (string, error) {
	f.downloads++
	if f.downloadErr != nil {
		return "", f.downloadErr
	}
	return "/tmp/vocab_results.pdf", nil
}

func (f *fakeService) IsCurrent(s *quiz.Session) bool {
	return f.manager.IsCurrent(s)
}

func newTestApplication(t *testing.T) (*Application, *fakeService) {
	t.Helper()
	svc := &fakeService{manager: quiz.NewManager()}
	a := newApplication(test.NewApp(), &Config{Service: svc, Logger: logrus.New()})
	t.Cleanup(a.cancel)
	return a, svc
}

func entries(words ...string) []wordbank.Entry {
	out := make([]wordbank.Entry, len(words))
	for i, w := range words {
		out[i] = wordbank.Entry{Word: w}
	}
	return out
}

func TestNewApplication_InitialState(t *testing.T) {
	a, _ := newTestApplication(t)

	assert.False(t, a.startButton.Disabled())
	assert.True(t, a.submitButton.Disabled())
	assert.True(t, a.downloadButton.Disabled())
	assert.Empty(t, a.rows)
}

func TestShowSession(t *testing.T) {
	a, svc := newTestApplication(t)
	s := svc.manager.Start(entries("cat", "dog", "sun"))

	a.showSession(s)

	require.Len(t, a.rows, 3)
	for i, row := range a.rows {
		assert.Equal(t, fmt.Sprintf("%d. %s", i+1, []string{"cat", "dog", "sun"}[i]), row.label.Text)
		assert.Equal(t, AnswerPlaceholder, row.entry.PlaceHolder)
		assert.False(t, row.result.Visible())
	}
	assert.False(t, a.submitButton.Disabled())
	assert.True(t, a.downloadButton.Disabled())
}

func TestShowSession_EmptyBank(t *testing.T) {
	a, svc := newTestApplication(t)

	a.showSession(svc.manager.Start(nil))

	assert.Empty(t, a.rows)
	assert.True(t, a.submitButton.Disabled())
	assert.Equal(t, EmptyBankNotice, a.statusLabel.Text)
}

func TestShowResult_IgnoresStaleSession(t *testing.T) {
	a, svc := newTestApplication(t)
	old := svc.manager.Start(entries("cat", "dog"))
	a.showSession(old)

	current := svc.manager.Start(entries("sun", "moon"))
	a.showSession(current)

	a.showResult(old, 0, quiz.GradedResult{Word: "cat", StudentAnswer: "貓", ReferenceTranslation: "貓"})
	assert.False(t, a.rows[0].result.Visible(), "stale result must not be rendered")

	a.showResult(current, 0, quiz.GradedResult{Word: "sun", StudentAnswer: quiz.BlankAnswer, ReferenceTranslation: "太陽"})
	assert.True(t, a.rows[0].result.Visible())
	assert.Equal(t, "➜ 你的答案：（空白）\n➜ 參考中文：太陽", a.rows[0].result.Text)
}

func TestFinishGrading(t *testing.T) {
	a, svc := newTestApplication(t)
	s := svc.manager.Start(entries("cat"))
	a.showSession(s)

	results := []quiz.GradedResult{{Word: "cat", StudentAnswer: "貓", ReferenceTranslation: "貓"}}
	a.finishGrading(s, results, nil)

	assert.False(t, a.downloadButton.Disabled())
	assert.Contains(t, a.statusLabel.Text, "1 matching the reference")
}

func TestOnSubmit_StartDisabledWhileGrading(t *testing.T) {
	a, svc := newTestApplication(t)
	release := make(chan struct{})
	svc.grade = func() ([]quiz.GradedResult, error) {
		<-release
		return []quiz.GradedResult{{Word: "cat", StudentAnswer: quiz.BlankAnswer, ReferenceTranslation: "貓"}}, nil
	}
	a.showSession(svc.manager.Start(entries("cat")))

	a.onSubmit()
	assert.True(t, a.startButton.Disabled())
	assert.True(t, a.submitButton.Disabled())

	close(release)
	a.wg.Wait()
	assert.Eventually(t, func() bool { return !a.startButton.Disabled() }, time.Second, 10*time.Millisecond)
}

func TestFinishGrading_StaleSessionEnablesStart(t *testing.T) {
	a, svc := newTestApplication(t)
	old := svc.manager.Start(entries("cat"))
	a.showSession(old)
	a.startButton.Disable()
	a.showSession(svc.manager.Start(entries("sun")))

	a.finishGrading(old, nil, nil)

	assert.False(t, a.startButton.Disabled())
	assert.True(t, a.downloadButton.Disabled())
}

func TestOnDownload(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status string
	}{
		{"saved", nil, "Saved /tmp/vocab_results.pdf"},
		{"no results", &export.ExportError{Format: "pdf", Err: export.ErrNoResults}, NoResultsNotice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, svc := newTestApplication(t)
			svc.downloadErr = tt.err

			a.onDownload()

			assert.Equal(t, 1, svc.downloads)
			assert.Equal(t, tt.status, a.statusLabel.Text)
		})
	}
}

func TestNoticeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"load error", &wordbank.LoadError{Source: "bank.json", Err: errors.New("missing")}, LoadFailedNotice},
		{"no results", &export.ExportError{Format: "pdf", Err: export.ErrNoResults}, NoResultsNotice},
		{"not graded", quiz.ErrNotGraded, NoResultsNotice},
		{"other", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, noticeFor(tt.err))
		})
	}
}

func TestFormatResult_MarksMatch(t *testing.T) {
	got := formatResult(quiz.GradedResult{Word: "cat", StudentAnswer: "貓", ReferenceTranslation: "貓"})
	assert.Equal(t, "➜ 你的答案：貓\n➜ 參考中文：貓 ✓", got)
}
