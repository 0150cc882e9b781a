package anki

import (
	"testing"

	"codeberg.org/snonux/vocabquiz/internal/quiz"
)

func TestCardsFromResults(t *testing.T) {
	results := []quiz.GradedResult{
		{Word: "cat", StudentAnswer: "貓", ReferenceTranslation: "貓"},
		{Word: "dog", StudentAnswer: quiz.BlankAnswer, ReferenceTranslation: "狗"},
		{Word: "sun", StudentAnswer: "太陽", ReferenceTranslation: quiz.LookupFailed},
		{Word: "zzz", StudentAnswer: "?", ReferenceTranslation: quiz.NoLookupResult},
	}

	cards := CardsFromResults(results)
	if len(cards) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(cards))
	}

	if cards[0].Word != "cat" || !cards[0].Correct {
		t.Errorf("Unexpected first card: %+v", cards[0])
	}
	if cards[1].Word != "dog" || cards[1].Correct {
		t.Errorf("Unexpected second card: %+v", cards[1])
	}
	if cards[1].Answer != quiz.BlankAnswer {
		t.Errorf("Expected answer %q, got %q", quiz.BlankAnswer, cards[1].Answer)
	}
}

func TestCardTags(t *testing.T) {
	tests := []struct {
		card Card
		want string
	}{
		{Card{Correct: true}, "vocabquiz correct"},
		{Card{Correct: false}, "vocabquiz review"},
	}

	for _, tt := range tests {
		if got := tt.card.Tags(); got != tt.want {
			t.Errorf("Tags() = %q, want %q", got, tt.want)
		}
	}
}

func TestNewGenerator(t *testing.T) {
	tests := []struct {
		name     string
		deckName string
		want     string
		file     string
	}{
		{"named deck", "Week 3", "Week 3", "Week_3.apkg"},
		{"empty name", "", DefaultDeckName, "Vocabulary_Quiz.apkg"},
		{"blank name", "   ", DefaultDeckName, "Vocabulary_Quiz.apkg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewGenerator(tt.deckName)
			if gen.DeckName() != tt.want {
				t.Errorf("DeckName() = %q, want %q", gen.DeckName(), tt.want)
			}
			if gen.FileName() != tt.file {
				t.Errorf("FileName() = %q, want %q", gen.FileName(), tt.file)
			}
		})
	}
}

func TestStats(t *testing.T) {
	gen := NewGenerator("")
	gen.AddCard(Card{Word: "a", Correct: true})
	gen.AddCard(Card{Word: "b"})
	gen.AddCard(Card{Word: "c"})

	total, correct, review := gen.Stats()
	if total != 3 || correct != 1 || review != 2 {
		t.Errorf("Stats() = (%d, %d, %d), want (3, 1, 2)", total, correct, review)
	}
}

func TestCardsReturnsCopy(t *testing.T) {
	gen := NewGenerator("")
	gen.AddResults([]quiz.GradedResult{{Word: "cat", StudentAnswer: "貓", ReferenceTranslation: "貓"}})

	cards := gen.Cards()
	cards[0].Word = "changed"

	if gen.Cards()[0].Word != "cat" {
		t.Error("Cards() exposed the internal slice")
	}
}

func TestWriteAPKGWithoutCards(t *testing.T) {
	gen := NewGenerator("")
	gen.AddResults([]quiz.GradedResult{{Word: "sun", ReferenceTranslation: quiz.LookupFailed}})

	if _, err := gen.WriteAPKG(t.TempDir()); err == nil {
		t.Error("Expected an error when no card can be exported")
	}
}
