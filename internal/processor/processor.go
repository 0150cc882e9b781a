package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"codeberg.org/snonux/vocabquiz/internal/anki"
	"codeberg.org/snonux/vocabquiz/internal/archive"
	"codeberg.org/snonux/vocabquiz/internal/cli"
	"codeberg.org/snonux/vocabquiz/internal/export"
	"codeberg.org/snonux/vocabquiz/internal/models"
	"codeberg.org/snonux/vocabquiz/internal/quiz"
	"codeberg.org/snonux/vocabquiz/internal/wordbank"
)

// Processor handles the quiz flow shared by all modes
type Processor struct {
	flags      *cli.Flags
	settings   cli.Settings
	logger     logrus.FieldLogger
	loader     *wordbank.Loader
	translator quiz.Translator
	manager    *quiz.Manager
	source     quiz.IntSource
	pdf        *export.PDFExporter

	in  io.Reader
	out io.Writer
	now func() time.Time
}

// Option configures a Processor
type Option func(*Processor)

// WithTranslator replaces the translator built from the settings
func WithTranslator(t quiz.Translator) Option {
	return func(p *Processor) { p.translator = t }
}

// WithIO sets where terminal mode reads answers and writes progress
func WithIO(in io.Reader, out io.Writer) Option {
	return func(p *Processor) {
		p.in = in
		p.out = out
	}
}

// WithClock sets the clock used for export timestamps and archive names
func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

// NewProcessor creates a new processor. The translator is built from the
// settings unless one is supplied with WithTranslator.
func NewProcessor(ctx context.Context, flags *cli.Flags, settings cli.Settings, logger logrus.FieldLogger, opts ...Option) (*Processor, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	p := &Processor{
		flags:    flags,
		settings: settings,
		logger:   logger,
		loader:   wordbank.NewLoader(settings.BankSource),
		manager:  quiz.NewManager(),
		in:       os.Stdin,
		out:      os.Stdout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	if flags.SeedSet {
		p.source = quiz.NewSeededSource(flags.Seed)
	}
	p.pdf = export.NewPDFExporter(export.PDFOptions{FontPath: settings.FontPath, Now: p.now})

	// Archiving and listing models never look anything up
	if p.translator == nil && !flags.Archive && !flags.ListModels {
		t, err := settings.NewTranslator(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create translator: %w", err)
		}
		p.translator = t
	}
	return p, nil
}

// StartSession loads the word bank and begins a new session with a random
// pick of at most the configured number of words. The previous session is
// discarded.
func (p *Processor) StartSession(ctx context.Context) (*quiz.Session, error) {
	bank, err := p.loader.Load(ctx)
	if err != nil {
		p.logger.WithError(err).Error("failed to load word bank")
		return nil, err
	}

	picked := quiz.Pick(bank.Words, p.settings.Limit, p.source)
	s := p.manager.Start(picked)

	p.logger.WithFields(logrus.Fields{
		"session": s.ID(),
		"source":  bank.Source,
		"bank":    bank.Len(),
		"picked":  s.Len(),
	}).Info("session started")
	return s, nil
}

// Grade grades s. Progress callbacks for a session that is no longer
// current are dropped.
func (p *Processor) Grade(ctx context.Context, s *quiz.Session, answers quiz.AnswerLookup, progress quiz.ProgressFunc) ([]quiz.GradedResult, error) {
	var opts []quiz.GraderOption
	if progress != nil {
		opts = append(opts, quiz.WithProgress(func(gs *quiz.Session, i int, r quiz.GradedResult) {
			if p.manager.IsCurrent(gs) {
				progress(gs, i, r)
			}
		}))
	}

	results, err := quiz.NewGrader(p.translator, p.logger, opts...).GradeAll(ctx, s, answers)
	if err != nil {
		return nil, err
	}

	p.logger.WithField("session", s.ID()).Info(quiz.Summarize(results).String())
	return results, nil
}

// IsCurrent reports whether s is the active session
func (p *Processor) IsCurrent(s *quiz.Session) bool {
	return p.manager.IsCurrent(s)
}

// Download writes the PDF of the graded results of s into the output
// directory and returns its path
func (p *Processor) Download(s *quiz.Session) (string, error) {
	var results []quiz.GradedResult
	if s != nil {
		results = s.Results()
	}

	path, err := p.pdf.WriteFile(p.settings.OutputDir, results)
	if err != nil {
		return "", err
	}
	if err := s.MarkExported(); err != nil {
		return "", err
	}
	p.logger.WithField("path", path).Info("results exported")
	return path, nil
}

// ExportAll writes every export enabled by the flags and returns the paths
// written
func (p *Processor) ExportAll(s *quiz.Session) ([]string, error) {
	results := s.Results()
	if len(results) == 0 {
		return nil, &export.ExportError{Format: "results", Err: export.ErrNoResults}
	}

	var paths []string
	if p.flags.PDF {
		path, err := p.Download(s)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	if p.flags.CSV {
		path, err := export.WriteCSVFile(p.settings.OutputDir, results)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	if p.flags.Anki {
		gen := anki.NewGenerator(p.settings.DeckName)
		gen.AddResults(results)
		path, err := gen.WriteAPKG(p.settings.OutputDir)
		if err != nil {
			// Sessions where every lookup failed have nothing to learn from
			p.logger.WithError(err).Warn("skipping Anki export")
		} else {
			total, correct, review := gen.Stats()
			p.logger.WithFields(logrus.Fields{"cards": total, "correct": correct, "review": review}).Info("Anki package written")
			paths = append(paths, path)
		}
	}

	if len(paths) > 0 {
		if err := s.MarkExported(); err != nil {
			return paths, err
		}
	}
	return paths, nil
}

// ListModels prints the chat models usable by the OpenAI provider
func (p *Processor) ListModels(ctx context.Context) error {
	lister := models.NewListerWithBaseURL(cli.GetOpenAIKey(), p.settings.Translation.OpenAIBaseURL)
	return lister.ListAvailableModels(ctx, p.out, p.settings.Translation.OpenAIModel)
}

// Archive moves the output directory into a timestamped archive
func (p *Processor) Archive() error {
	path, err := archive.ArchiveResults(p.settings.OutputDir, p.now())
	if err != nil {
		if errors.Is(err, archive.ErrNothingToArchive) {
			fmt.Fprintf(p.out, "Nothing to archive: %s does not exist\n", p.settings.OutputDir)
			return nil
		}
		return fmt.Errorf("failed to archive results: %w", err)
	}
	fmt.Fprintf(p.out, "Results directory archived to: %s\n", path)
	return nil
}
