package quiz

import (
	"fmt"
	"strings"
)

// Sentinel values stored in place of missing data
const (
	BlankAnswer     = "（空白）"
	LookupFailed    = "（翻譯失敗）"
	NoLookupResult  = "（無結果）"
	MaxSessionWords = 25
)

// GradedResult pairs a session word with the learner's answer and the
// reference translation.
type GradedResult struct {
	Word                 string `json:"word"`
	StudentAnswer        string `json:"studentAnswer"`
	ReferenceTranslation string `json:"referenceTranslation"`
}

// Failed reports whether the reference could not be fetched
func (r GradedResult) Failed() bool {
	return r.ReferenceTranslation == LookupFailed
}

// Blank reports whether the learner left the answer empty
func (r GradedResult) Blank() bool {
	return r.StudentAnswer == BlankAnswer
}

// Matches reports whether the answer equals the reference, ignoring case
// and whitespace. Sentinels never match.
func (r GradedResult) Matches() bool {
	if r.Blank() || r.ReferenceTranslation == LookupFailed || r.ReferenceTranslation == NoLookupResult {
		return false
	}
	return normalize(r.StudentAnswer) == normalize(r.ReferenceTranslation)
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// Summary counts the outcomes of a graded session
type Summary struct {
	Total        int
	Answered     int
	Blank        int
	Matched      int
	LookupFailed int
	NoResult     int
}

// Summarize computes the summary of results
func Summarize(results []GradedResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Blank() {
			s.Blank++
		} else {
			s.Answered++
		}
		if r.Matches() {
			s.Matched++
		}
		switch r.ReferenceTranslation {
		case LookupFailed:
			s.LookupFailed++
		case NoLookupResult:
			s.NoResult++
		}
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d words, %d answered, %d blank, %d matching the reference, %d lookups failed, %d without result",
		s.Total, s.Answered, s.Blank, s.Matched, s.LookupFailed, s.NoResult)
}
