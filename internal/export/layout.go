package export

import (
	"fmt"
	"time"

	"codeberg.org/snonux/vocabquiz/internal/quiz"
)

// Page geometry in millimetres
const (
	TopMargin     = 15.0
	PageBreakY    = 280.0
	WordX         = 10.0
	DetailX       = 12.0
	TitleSize     = 14.0
	BodySize      = 10.0
	lineSpacing   = 6.0
	resultSpacing = 10.0
)

// Title is the heading of every exported document
const Title = "Vocabulary Test Results"

// TimestampLayout formats the generation time line
const TimestampLayout = "2006-01-02 15:04:05"

// Line is a positioned line of text
type Line struct {
	X    float64
	Y    float64
	Size float64
	Text string
}

// Page is the ordered list of lines on one page
type Page struct {
	Lines []Line
}

// Layout places the title, the generation timestamp and three lines per
// result. A new page begins before any result that would start below
// PageBreakY.
func Layout(results []quiz.GradedResult, generatedAt time.Time) ([]Page, error) {
	if len(results) == 0 {
		return nil, &ExportError{Format: "pdf", Err: ErrNoResults}
	}

	pages := []Page{{}}
	cur := &pages[0]
	y := TopMargin

	cur.Lines = append(cur.Lines, Line{X: WordX, Y: y, Size: TitleSize, Text: Title})
	y += 8
	cur.Lines = append(cur.Lines, Line{X: WordX, Y: y, Size: BodySize, Text: "Generated: " + generatedAt.Format(TimestampLayout)})
	y += 10

	for i, r := range results {
		if y > PageBreakY {
			pages = append(pages, Page{})
			cur = &pages[len(pages)-1]
			y = TopMargin
		}

		cur.Lines = append(cur.Lines, Line{X: WordX, Y: y, Size: BodySize, Text: fmt.Sprintf("%d. %s", i+1, r.Word)})
		y += lineSpacing
		cur.Lines = append(cur.Lines, Line{X: DetailX, Y: y, Size: BodySize, Text: "Your answer: " + r.StudentAnswer})
		y += lineSpacing
		cur.Lines = append(cur.Lines, Line{X: DetailX, Y: y, Size: BodySize, Text: "Reference: " + r.ReferenceTranslation})
		y += resultSpacing
	}

	return pages, nil
}

// Texts flattens the pages into their text lines
func Texts(pages []Page) []string {
	var out []string
	for _, p := range pages {
		for _, l := range p.Lines {
			out = append(out, l.Text)
		}
	}
	return out
}
