package anki

import (
	"fmt"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/vocabquiz/internal"
	"codeberg.org/snonux/vocabquiz/internal/quiz"
)

// DefaultDeckName is used when no deck name is configured
const DefaultDeckName = "Vocabulary Quiz"

// Card represents a single review card built from a graded result
type Card struct {
	Word      string // Front side
	Reference string // Reference translation shown on the back
	Answer    string // What the learner typed
	Correct   bool
}

// Tags returns the space separated Anki tags of the card
func (c Card) Tags() string {
	if c.Correct {
		return "vocabquiz correct"
	}
	return "vocabquiz review"
}

// CardsFromResults turns graded results into cards. Results without a
// usable reference translation are skipped since they have nothing to learn.
func CardsFromResults(results []quiz.GradedResult) []Card {
	cards := make([]Card, 0, len(results))
	for _, r := range results {
		if r.Failed() || r.ReferenceTranslation == quiz.NoLookupResult {
			continue
		}
		cards = append(cards, Card{
			Word:      r.Word,
			Reference: r.ReferenceTranslation,
			Answer:    r.StudentAnswer,
			Correct:   r.Matches(),
		})
	}
	return cards
}

// Generator collects cards and writes them as an Anki package
type Generator struct {
	deckName string
	cards    []Card
}

// NewGenerator creates a new Anki generator
func NewGenerator(deckName string) *Generator {
	if strings.TrimSpace(deckName) == "" {
		deckName = DefaultDeckName
	}
	return &Generator{deckName: deckName}
}

// DeckName returns the name of the deck
func (g *Generator) DeckName() string {
	return g.deckName
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// AddResults adds a card for every usable graded result
func (g *Generator) AddResults(results []quiz.GradedResult) {
	g.cards = append(g.cards, CardsFromResults(results)...)
}

// Cards returns a copy of the collected cards
func (g *Generator) Cards() []Card {
	out := make([]Card, len(g.cards))
	copy(out, g.cards)
	return out
}

// Stats returns statistics about the card collection
func (g *Generator) Stats() (total, correct, review int) {
	total = len(g.cards)
	for _, card := range g.cards {
		if card.Correct {
			correct++
		} else {
			review++
		}
	}
	return
}

// FileName returns the package file name derived from the deck name
func (g *Generator) FileName() string {
	return internal.SanitizeFilename(g.deckName) + ".apkg"
}

// WriteAPKG writes the package into dir and returns its path
func (g *Generator) WriteAPKG(dir string) (string, error) {
	if len(g.cards) == 0 {
		return "", fmt.Errorf("no cards to export")
	}

	path := filepath.Join(dir, g.FileName())
	apkg := NewAPKGGenerator(g.deckName)
	for _, card := range g.cards {
		apkg.AddCard(card)
	}
	if err := apkg.GenerateAPKG(path); err != nil {
		return "", err
	}
	return path, nil
}
