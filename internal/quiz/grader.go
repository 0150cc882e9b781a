package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"codeberg.org/snonux/vocabquiz/internal/translation"
)

// Translator looks up the reference translation of a word
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// AnswerLookup returns the raw answer the learner typed for the word at
// position i of the session.
type AnswerLookup func(i int) string

// AnswersFromSlice serves answers by position; missing positions are blank
func AnswersFromSlice(answers []string) AnswerLookup {
	return func(i int) string {
		if i < 0 || i >= len(answers) {
			return ""
		}
		return answers[i]
	}
}

// ProgressFunc is called after each word has been graded
type ProgressFunc func(s *Session, index int, r GradedResult)

// LookupError describes a failed or empty reference lookup. It is logged
// and replaced by a sentinel; it never stops grading.
type LookupError struct {
	Index    int
	Word     string
	NoResult bool
	Err      error
}

func (e *LookupError) Error() string {
	if e.NoResult {
		return fmt.Sprintf("no translation for %q: %v", e.Word, e.Err)
	}
	return fmt.Sprintf("translation lookup for %q failed: %v", e.Word, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Grader resolves reference translations and pairs them with answers
type Grader struct {
	translator Translator
	logger     logrus.FieldLogger
	progress   ProgressFunc
}

// GraderOption configures a Grader
type GraderOption func(*Grader)

// WithProgress registers a callback invoked after every graded word
func WithProgress(fn ProgressFunc) GraderOption {
	return func(g *Grader) {
		g.progress = fn
	}
}

// NewGrader creates a grader using translator for the reference lookups
func NewGrader(translator Translator, logger logrus.FieldLogger, opts ...GraderOption) *Grader {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	g := &Grader{translator: translator, logger: logger}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GradeAll grades every word of s in index order, one lookup at a time.
// Lookup failures are logged and replaced by sentinels; the loop always
// covers the whole session. The returned slice has one result per session
// word in session order.
func (g *Grader) GradeAll(ctx context.Context, s *Session, answers AnswerLookup) ([]GradedResult, error) {
	if s == nil {
		return nil, errors.New("no active session")
	}
	if answers == nil {
		answers = AnswersFromSlice(nil)
	}
	if err := s.beginGrading(); err != nil {
		return nil, err
	}
	defer s.finishGrading()

	for _, w := range s.words {
		answer := strings.TrimSpace(answers(w.Index))
		if answer == "" {
			answer = BlankAnswer
		}

		reference, err := g.Reference(ctx, w.Word)
		if err != nil {
			var lookupErr *LookupError
			if errors.As(err, &lookupErr) {
				lookupErr.Index = w.Index
			}
			g.logger.WithFields(logrus.Fields{
				"session": s.id,
				"index":   w.Index,
				"word":    w.Word,
			}).WithError(err).Warn("reference lookup failed")
		}

		r := GradedResult{
			Word:                 w.Word,
			StudentAnswer:        answer,
			ReferenceTranslation: reference,
		}
		s.appendResult(r)

		if g.progress != nil {
			g.progress(s, w.Index, r)
		}
	}

	return s.Results(), nil
}

// Reference looks up word and always returns a displayable reference: the
// translation, or the matching sentinel together with a *LookupError.
func (g *Grader) Reference(ctx context.Context, word string) (string, error) {
	if g.translator == nil {
		return LookupFailed, &LookupError{Word: word, Err: errors.New("no translator configured")}
	}

	t, err := g.translator.Translate(ctx, word)
	switch {
	case errors.Is(err, translation.ErrNoResult):
		return NoLookupResult, &LookupError{Word: word, NoResult: true, Err: err}
	case err != nil:
		return LookupFailed, &LookupError{Word: word, Err: err}
	}

	t = strings.TrimSpace(t)
	if t == "" {
		return NoLookupResult, &LookupError{Word: word, NoResult: true, Err: translation.ErrNoResult}
	}
	return t, nil
}
