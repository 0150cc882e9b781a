package quiz

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/vocabquiz/internal/translation"
)

// dictionary translates from a fixed map; words listed in fail return a
// transport error and words missing from the map return ErrNoResult.
type dictionary struct {
	mu    sync.Mutex
	words map[string]string
	fail  map[string]bool
	calls []string
}

func (d *dictionary) Translate(ctx context.Context, text string) (string, error) {
	d.mu.Lock()
	d.calls = append(d.calls, text)
	d.mu.Unlock()

	if d.fail[text] {
		return "", errors.New("503 Service Unavailable")
	}
	t, ok := d.words[text]
	if !ok {
		return "", translation.ErrNoResult
	}
	return t, nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestGradeAll_Scenario(t *testing.T) {
	dict := &dictionary{
		words: map[string]string{"cat": "貓", "sun": "太陽"},
		fail:  map[string]bool{"dog": true},
	}
	logger, hook := test.NewNullLogger()

	s := NewManager().Start(entries("cat", "dog", "sun"))
	results, err := NewGrader(dict, logger).GradeAll(context.Background(), s, AnswersFromSlice([]string{"貓", "", "太陽"}))
	require.NoError(t, err)

	assert.Equal(t, []GradedResult{
		{Word: "cat", StudentAnswer: "貓", ReferenceTranslation: "貓"},
		{Word: "dog", StudentAnswer: "（空白）", ReferenceTranslation: "（翻譯失敗）"},
		{Word: "sun", StudentAnswer: "太陽", ReferenceTranslation: "太陽"},
	}, results)
	assert.Equal(t, []string{"cat", "dog", "sun"}, dict.calls)
	assert.Equal(t, PhaseSubmitted, s.Phase())

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "dog", entry.Data["word"])
	assert.Equal(t, 1, entry.Data["index"])
}

func TestGradeAll_ResultsMatchSessionWords(t *testing.T) {
	dict := &dictionary{words: map[string]string{}}
	s := NewManager().Start(numberedEntries(25))

	results, err := NewGrader(dict, quietLogger()).GradeAll(context.Background(), s, nil)
	require.NoError(t, err)

	words := s.Words()
	require.Len(t, results, len(words))
	for i := range words {
		assert.Equal(t, words[i].Word, results[i].Word)
		assert.Equal(t, BlankAnswer, results[i].StudentAnswer)
		assert.Equal(t, NoLookupResult, results[i].ReferenceTranslation)
	}
	assert.Equal(t, results, s.Results())
}

func TestGradeAll_WhitespaceAnswerIsBlank(t *testing.T) {
	dict := &dictionary{words: map[string]string{"cat": "貓", "dog": "狗"}}
	s := NewManager().Start(entries("cat", "dog"))

	results, err := NewGrader(dict, quietLogger()).GradeAll(context.Background(), s, AnswersFromSlice([]string{" \t\n ", "  狗 "}))
	require.NoError(t, err)

	assert.Equal(t, BlankAnswer, results[0].StudentAnswer)
	assert.Equal(t, "狗", results[1].StudentAnswer)
	for _, r := range results {
		assert.NotEmpty(t, r.StudentAnswer)
	}
}

func TestGradeAll_AllLookupsFail(t *testing.T) {
	failing := translation.Func(func(ctx context.Context, text string) (string, error) {
		return "", errors.New("network down")
	})
	s := NewManager().Start(entries("a", "b", "c", "d"))

	results, err := NewGrader(failing, quietLogger()).GradeAll(context.Background(), s, nil)
	require.NoError(t, err)

	require.Len(t, results, 4)
	for _, r := range results {
		assert.Equal(t, LookupFailed, r.ReferenceTranslation)
		assert.True(t, r.Failed())
	}
}

func TestGradeAll_EmptyTranslationIsNoResult(t *testing.T) {
	blank := translation.Func(func(ctx context.Context, text string) (string, error) {
		return "   ", nil
	})
	s := NewManager().Start(entries("cat"))

	results, err := NewGrader(blank, quietLogger()).GradeAll(context.Background(), s, nil)
	require.NoError(t, err)
	assert.Equal(t, NoLookupResult, results[0].ReferenceTranslation)
}

func TestGradeAll_Twice(t *testing.T) {
	dict := &dictionary{words: map[string]string{"cat": "貓"}}
	g := NewGrader(dict, quietLogger())
	s := NewManager().Start(entries("cat"))

	_, err := g.GradeAll(context.Background(), s, nil)
	require.NoError(t, err)

	_, err = g.GradeAll(context.Background(), s, nil)
	assert.ErrorIs(t, err, ErrAlreadyGraded)
	assert.Len(t, s.Results(), 1)
}

func TestGradeAll_NilSession(t *testing.T) {
	_, err := NewGrader(&dictionary{}, quietLogger()).GradeAll(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestGradeAll_Progress(t *testing.T) {
	dict := &dictionary{words: map[string]string{"cat": "貓", "dog": "狗"}}
	var seen []int
	g := NewGrader(dict, quietLogger(), WithProgress(func(s *Session, index int, r GradedResult) {
		seen = append(seen, index)
		// results recorded so far include the one being reported
		assert.Len(t, s.Results(), index+1)
	}))

	_, err := g.GradeAll(context.Background(), NewManager().Start(entries("cat", "dog")), nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, seen)
}

func TestGradeAll_StaleSessionDoesNotTouchNewOne(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	slow := translation.Func(func(ctx context.Context, text string) (string, error) {
		once.Do(func() { close(started) })
		<-release
		return "舊", nil
	})

	m := NewManager()
	old := m.Start(entries("cat", "dog"))

	done := make(chan []GradedResult)
	go func() {
		results, _ := NewGrader(slow, quietLogger()).GradeAll(context.Background(), old, nil)
		done <- results
	}()

	<-started
	fresh := m.Start(entries("sun"))
	close(release)
	oldResults := <-done

	assert.Len(t, oldResults, 2)
	assert.False(t, m.IsCurrent(old))
	assert.True(t, m.IsCurrent(fresh))
	assert.Empty(t, fresh.Results())
	assert.Equal(t, PhaseLoaded, fresh.Phase())
}

func TestReference_NoTranslator(t *testing.T) {
	ref, err := NewGrader(nil, quietLogger()).Reference(context.Background(), "cat")

	assert.Equal(t, LookupFailed, ref)
	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "cat", lookupErr.Word)
}

func TestReference_NoResultError(t *testing.T) {
	_, err := NewGrader(&dictionary{}, quietLogger()).Reference(context.Background(), "zzz")

	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.True(t, lookupErr.NoResult)
	assert.ErrorIs(t, err, translation.ErrNoResult)
}

func TestGradeAll_TransientOutageStillLooksUpEveryWord(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) <= 5 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[[["ok"]]]`))
	}))
	defer srv.Close()

	cfg := translation.DefaultConfig()
	cfg.Endpoint = srv.URL
	cfg.Logger = quietLogger()
	tr, err := translation.New(context.Background(), cfg)
	require.NoError(t, err)

	s := NewManager().Start(entries("a", "b", "c", "d", "e", "f", "g", "h", "i", "j"))
	results, err := NewGrader(tr, quietLogger()).GradeAll(context.Background(), s, nil)
	require.NoError(t, err)

	assert.EqualValues(t, 10, hits.Load())
	require.Len(t, results, 10)
	for i, r := range results {
		if i < 5 {
			assert.Equal(t, LookupFailed, r.ReferenceTranslation, r.Word)
		} else {
			assert.Equal(t, "ok", r.ReferenceTranslation, r.Word)
		}
	}
}
