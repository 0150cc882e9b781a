package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"codeberg.org/snonux/vocabquiz/internal/quiz"
)

// DefaultPDFName is the file name used for downloaded results
const DefaultPDFName = "vocab_results.pdf"

const utf8Family = "quizfont"

// DefaultFontCandidates are TrueType fonts with CJK coverage searched when
// no font is configured and the results cannot be drawn with Helvetica.
// Collections (.ttc) and CFF based .otf files are not usable by the PDF
// writer, so only plain .ttf files are listed.
var DefaultFontCandidates = []string{
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	"/usr/share/fonts/google-droid-sans-fonts/DroidSansFallbackFull.ttf",
	"/usr/share/fonts/droid/DroidSansFallbackFull.ttf",
	"/usr/share/fonts/truetype/arphic-bkai00mp/bkai00mp.ttf",
	"/usr/share/fonts/truetype/arphic-bsmi00lp/bsmi00lp.ttf",
	"/System/Library/Fonts/Supplemental/Arial Unicode.ttf",
	"/Library/Fonts/Arial Unicode.ttf",
	`C:\Windows\Fonts\kaiu.ttf`,
}

// ErrFontRequired is returned when the results hold characters Helvetica
// cannot draw and no TrueType font was configured or found
var ErrFontRequired = errors.New("results contain characters that need a TrueType font, set export.font_path (--font)")

// PDFOptions configures the PDF exporter
type PDFOptions struct {
	// FontPath points at a TrueType font able to draw the answers,
	// e.g. a CJK font. When empty, Helvetica is used for text it can
	// draw and FontCandidates are searched otherwise.
	FontPath string
	// FontCandidates replaces DefaultFontCandidates when non-nil
	FontCandidates []string
	FileName       string
	Now            func() time.Time
}

// PDFExporter renders results into a paginated A4 document
type PDFExporter struct {
	fontPath   string
	candidates []string
	fileName   string
	now        func() time.Time
}

// NewPDFExporter creates a new PDF exporter
func NewPDFExporter(opts PDFOptions) *PDFExporter {
	if opts.FileName == "" {
		opts.FileName = DefaultPDFName
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.FontCandidates == nil {
		opts.FontCandidates = DefaultFontCandidates
	}
	return &PDFExporter{
		fontPath:   opts.FontPath,
		candidates: opts.FontCandidates,
		fileName:   opts.FileName,
		now:        opts.Now,
	}
}

// FileName returns the name WriteFile uses
func (e *PDFExporter) FileName() string {
	return e.fileName
}

// Export returns the PDF document for results
func (e *PDFExporter) Export(results []quiz.GradedResult) ([]byte, error) {
	generatedAt := e.now()
	pages, err := Layout(results, generatedAt)
	if err != nil {
		return nil, err
	}

	fontPath, err := e.fontFor(pages)
	if err != nil {
		return nil, &ExportError{Format: "pdf", Err: err}
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(generatedAt)
	pdf.SetModificationDate(generatedAt)
	pdf.SetTitle(Title, true)
	pdf.SetCreator("vocabquiz", false)

	family := "Helvetica"
	encode := pdf.UnicodeTranslatorFromDescriptor("")
	if fontPath != "" {
		pdf.AddUTF8Font(utf8Family, "", fontPath)
		family = utf8Family
		encode = func(s string) string { return s }
	}

	for _, page := range pages {
		pdf.AddPage()
		for _, line := range page.Lines {
			pdf.SetFont(family, "", line.Size)
			pdf.Text(line.X, line.Y, encode(line.Text))
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, &ExportError{Format: "pdf", Err: err}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &ExportError{Format: "pdf", Err: err}
	}
	return buf.Bytes(), nil
}

// fontFor returns the TrueType font to embed, or "" when Helvetica can draw
// every line
func (e *PDFExporter) fontFor(pages []Page) (string, error) {
	if e.fontPath != "" {
		if _, err := os.Stat(e.fontPath); err != nil {
			return "", fmt.Errorf("font: %w", err)
		}
		return e.fontPath, nil
	}
	if coreFontCanDraw(pages) {
		return "", nil
	}
	for _, candidate := range e.candidates {
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}
	}
	return "", ErrFontRequired
}

// coreFontCanDraw reports whether every line is representable in the
// cp1252 encoding of the core fonts
func coreFontCanDraw(pages []Page) bool {
	for _, page := range pages {
		for _, line := range page.Lines {
			for _, r := range line.Text {
				if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
					return false
				}
			}
		}
	}
	return true
}

// WriteFile exports results into dir and returns the written path
func (e *PDFExporter) WriteFile(dir string, results []quiz.GradedResult) (string, error) {
	data, err := e.Export(results)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, e.fileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write PDF file: %w", err)
	}
	return path, nil
}
