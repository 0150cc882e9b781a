package wordbank

import "fmt"

// Entry is a single vocabulary item. Any fields besides word are ignored.
type Entry struct {
	Word string `json:"word"`
}

// Bank is the full ordered list of candidate words.
type Bank struct {
	Source string
	Words  []Entry
}

// Len returns the number of words in the bank
func (b *Bank) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Words)
}

// Strings returns the plain words in bank order
func (b *Bank) Strings() []string {
	out := make([]string, 0, b.Len())
	if b == nil {
		return out
	}
	for _, e := range b.Words {
		out = append(out, e.Word)
	}
	return out
}

// LoadError reports that the word bank source was unreachable or malformed.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load word bank %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
