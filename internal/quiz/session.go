package quiz

import (
	"errors"
	"sync"

	"codeberg.org/snonux/vocabquiz/internal"
	"codeberg.org/snonux/vocabquiz/internal/wordbank"
)

// Phase is the position of a session in the quiz flow
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoaded
	PhaseSubmitted
	PhaseExported
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoaded:
		return "loaded"
	case PhaseSubmitted:
		return "submitted"
	case PhaseExported:
		return "exported"
	default:
		return "unknown"
	}
}

var (
	// ErrAlreadyGraded is returned when grading a session a second time
	ErrAlreadyGraded = errors.New("session already graded")
	// ErrNotGraded is returned when exporting a session before grading
	ErrNotGraded = errors.New("session not graded yet")
)

// SessionWord is a word of the active session, addressed by its position
type SessionWord struct {
	Index int
	Word  string
}

// Session is one run of the quiz. Its words are fixed at creation; results
// are only ever appended, by the grader.
type Session struct {
	id         string
	generation uint64
	words      []SessionWord

	mu      sync.RWMutex
	phase   Phase
	grading bool
	results []GradedResult
}

func newSession(generation uint64, entries []wordbank.Entry) *Session {
	if len(entries) > MaxSessionWords {
		entries = entries[:MaxSessionWords]
	}

	words := make([]SessionWord, len(entries))
	plain := make([]string, len(entries))
	for i, e := range entries {
		words[i] = SessionWord{Index: i, Word: e.Word}
		plain[i] = e.Word
	}

	return &Session{
		id:         internal.GenerateSessionID(plain),
		generation: generation,
		words:      words,
		phase:      PhaseLoaded,
		results:    make([]GradedResult, 0, len(words)),
	}
}

// ID returns the session identifier used for exported file names
func (s *Session) ID() string { return s.id }

// Generation returns the start counter value this session was created with
func (s *Session) Generation() uint64 { return s.generation }

// Len returns the number of words in the session
func (s *Session) Len() int { return len(s.words) }

// Words returns a copy of the session words in display order
func (s *Session) Words() []SessionWord {
	out := make([]SessionWord, len(s.words))
	copy(out, s.words)
	return out
}

// Results returns a copy of the results recorded so far
func (s *Session) Results() []GradedResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]GradedResult, len(s.results))
	copy(out, s.results)
	return out
}

// Phase returns the current phase
func (s *Session) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// MarkExported records a successful export
func (s *Session) MarkExported() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseSubmitted && s.phase != PhaseExported {
		return ErrNotGraded
	}
	s.phase = PhaseExported
	return nil
}

func (s *Session) beginGrading() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.grading || s.phase != PhaseLoaded {
		return ErrAlreadyGraded
	}
	s.grading = true
	return nil
}

func (s *Session) appendResult(r GradedResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
}

func (s *Session) finishGrading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grading = false
	s.phase = PhaseSubmitted
}

// Manager owns the active session. Each Start creates a new Session with a
// higher generation, so work still running against an older session can
// never touch the new one and can be recognised as stale.
type Manager struct {
	mu         sync.Mutex
	generation uint64
	current    *Session
}

// NewManager creates a manager in the idle phase
func NewManager() *Manager {
	return &Manager{}
}

// Start discards the active session and begins a new one with words
func (m *Manager) Start(words []wordbank.Entry) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generation++
	m.current = newSession(m.generation, words)
	return m.current
}

// Current returns the active session, or nil while idle
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// IsCurrent reports whether s is still the active session
func (m *Manager) IsCurrent(s *Session) bool {
	if s == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil && m.current.generation == s.generation
}

// Phase returns the phase of the active session, PhaseIdle if none
func (m *Manager) Phase() Phase {
	if s := m.Current(); s != nil {
		return s.Phase()
	}
	return PhaseIdle
}

// Reset drops the active session
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
}
