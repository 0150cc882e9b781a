package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/vocabquiz/internal/cli"
	"codeberg.org/snonux/vocabquiz/internal/export"
	"codeberg.org/snonux/vocabquiz/internal/quiz"
	"codeberg.org/snonux/vocabquiz/internal/testutil"
	"codeberg.org/snonux/vocabquiz/internal/translation"
	"codeberg.org/snonux/vocabquiz/internal/wordbank"
)

var fixedNow = func() time.Time { return time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC) }

type fixture struct {
	proc   *Processor
	out    *strings.Builder
	hook   *test.Hook
	tr     *testutil.RecordingTranslator
	outDir string
}

func newFixture(t *testing.T, flags *cli.Flags, input string, words ...string) *fixture {
	t.Helper()
	dir := t.TempDir()

	settings := cli.Settings{
		BankSource:  testutil.WriteWordBank(t, dir, words...),
		Limit:       quiz.MaxSessionWords,
		OutputDir:   filepath.Join(dir, "results"),
		FontPath:    testutil.WriteFont(t, dir),
		DeckName:    "Test Deck",
		Translation: translation.DefaultConfig(),
	}

	logger, hook := test.NewNullLogger()
	tr := testutil.NewRecordingTranslator(map[string]string{
		"cat": "貓",
		"dog": "狗",
		"sun": "太陽",
	})
	out := &strings.Builder{}

	proc, err := NewProcessor(context.Background(), flags, settings, logger,
		WithTranslator(tr),
		WithIO(strings.NewReader(input), out),
		WithClock(fixedNow),
	)
	require.NoError(t, err)

	return &fixture{proc: proc, out: out, hook: hook, tr: tr, outDir: settings.OutputDir}
}

func seeded(seed uint64) *cli.Flags {
	flags := cli.NewFlags()
	flags.Seed = seed
	flags.SeedSet = true
	return flags
}

func TestStartSession(t *testing.T) {
	f := newFixture(t, seeded(1), "", "cat", "dog", "sun")

	s, err := f.proc.StartSession(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, quiz.PhaseLoaded, s.Phase())
	assert.True(t, f.proc.IsCurrent(s))

	var words []string
	for _, w := range s.Words() {
		words = append(words, w.Word)
	}
	assert.ElementsMatch(t, []string{"cat", "dog", "sun"}, words)
}

func TestStartSession_SameSeedSamePick(t *testing.T) {
	var bank []string
	for i := 0; i < 40; i++ {
		bank = append(bank, strings.Repeat("w", i+1))
	}

	first, err := newFixture(t, seeded(7), "", bank...).proc.StartSession(context.Background())
	require.NoError(t, err)
	second, err := newFixture(t, seeded(7), "", bank...).proc.StartSession(context.Background())
	require.NoError(t, err)

	assert.Equal(t, quiz.MaxSessionWords, first.Len())
	assert.Equal(t, first.Words(), second.Words())
}

func TestStartSession_LoadError(t *testing.T) {
	f := newFixture(t, cli.NewFlags(), "", "cat")
	f.proc.loader = wordbank.NewLoader(filepath.Join(t.TempDir(), "missing.json"))

	_, err := f.proc.StartSession(context.Background())

	var loadErr *wordbank.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, logrus.ErrorLevel, f.hook.LastEntry().Level)
}

func TestStartSession_DiscardsPreviousSession(t *testing.T) {
	f := newFixture(t, cli.NewFlags(), "", "cat", "dog")

	old, err := f.proc.StartSession(context.Background())
	require.NoError(t, err)
	current, err := f.proc.StartSession(context.Background())
	require.NoError(t, err)

	assert.False(t, f.proc.IsCurrent(old))
	assert.True(t, f.proc.IsCurrent(current))
	assert.Greater(t, current.Generation(), old.Generation())
}

func TestGrade_DropsProgressOfStaleSession(t *testing.T) {
	f := newFixture(t, cli.NewFlags(), "", "cat", "dog")

	old, err := f.proc.StartSession(context.Background())
	require.NoError(t, err)
	_, err = f.proc.StartSession(context.Background())
	require.NoError(t, err)

	calls := 0
	results, err := f.proc.Grade(context.Background(), old, nil, func(*quiz.Session, int, quiz.GradedResult) { calls++ })
	require.NoError(t, err)

	assert.Len(t, results, 2)
	assert.Zero(t, calls)
}

func TestRunTerminal(t *testing.T) {
	flags := seeded(3)
	flags.CSV = true
	f := newFixture(t, flags, "貓\n\n太陽\n", "cat", "dog", "sun")

	require.NoError(t, f.proc.RunTerminal(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "Quiz with 3 words")
	assert.Contains(t, out, "➜ 你的答案：（空白）")
	assert.Contains(t, out, "➜ 參考中文：")
	assert.Contains(t, out, "=== Quiz Summary ===")

	testutil.AssertFileExists(t, filepath.Join(f.outDir, export.DefaultPDFName))
	testutil.AssertFileExists(t, filepath.Join(f.outDir, export.DefaultCSVName))
	assert.Len(t, f.tr.Calls(), 3)
}

func TestRunTerminal_EmptyBank(t *testing.T) {
	f := newFixture(t, cli.NewFlags(), "")

	require.NoError(t, f.proc.RunTerminal(context.Background()))

	assert.Contains(t, f.out.String(), "has no words")
	assert.Empty(t, f.tr.Calls())
	testutil.AssertFileNotExists(t, filepath.Join(f.outDir, export.DefaultPDFName))
}

func TestRunBatch(t *testing.T) {
	answers := filepath.Join(t.TempDir(), "answers.txt")
	testutil.CreateTestFile(t, answers, []byte("cat = 貓\ndog = 貓\nsun = 太陽\n"))

	flags := seeded(11)
	flags.AnswersFile = answers
	flags.Anki = true
	f := newFixture(t, flags, "", "cat", "dog", "sun")
	f.tr.Errors["dog"] = errors.New("service down")

	require.NoError(t, f.proc.RunBatch(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "3 words, 3 answered, 0 blank, 2 matching the reference, 1 lookups failed")
	assert.Contains(t, out, "➜ 參考中文：（翻譯失敗）")
	testutil.AssertFileExists(t, filepath.Join(f.outDir, "Test_Deck.apkg"))

	entry := f.hook.AllEntries()
	var warned bool
	for _, e := range entry {
		if e.Level == logrus.WarnLevel && e.Data["word"] == "dog" {
			warned = true
		}
	}
	assert.True(t, warned, "failed lookup should be logged with the word")
}

func TestRunBatch_MissingAnswersFile(t *testing.T) {
	flags := cli.NewFlags()
	flags.AnswersFile = filepath.Join(t.TempDir(), "missing.txt")
	f := newFixture(t, flags, "", "cat")

	assert.Error(t, f.proc.RunBatch(context.Background()))
	assert.Empty(t, f.tr.Calls())
}

func TestDownload(t *testing.T) {
	f := newFixture(t, cli.NewFlags(), "", "cat")

	s, err := f.proc.StartSession(context.Background())
	require.NoError(t, err)

	_, err = f.proc.Download(s)
	assert.ErrorIs(t, err, export.ErrNoResults, "nothing graded yet")

	_, err = f.proc.Grade(context.Background(), s, quiz.AnswersFromSlice([]string{"貓"}), nil)
	require.NoError(t, err)

	path, err := f.proc.Download(s)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.outDir, export.DefaultPDFName), path)
	assert.Equal(t, quiz.PhaseExported, s.Phase())
}

func TestDownload_NoSession(t *testing.T) {
	f := newFixture(t, cli.NewFlags(), "", "cat")

	_, err := f.proc.Download(nil)

	var exportErr *export.ExportError
	assert.ErrorAs(t, err, &exportErr)
}

func TestArchive(t *testing.T) {
	f := newFixture(t, cli.NewFlags(), "", "cat")

	require.NoError(t, f.proc.Archive())
	assert.Contains(t, f.out.String(), "Nothing to archive")

	require.NoError(t, os.MkdirAll(f.outDir, 0755))
	require.NoError(t, f.proc.Archive())
	assert.Contains(t, f.out.String(), "results-20261015-")
	testutil.AssertFileNotExists(t, f.outDir)
}

func TestNewProcessor_UnknownProvider(t *testing.T) {
	settings := cli.Settings{Translation: translation.DefaultConfig()}
	settings.Translation.Provider = "babelfish"

	_, err := NewProcessor(context.Background(), cli.NewFlags(), settings, nil)
	assert.Error(t, err)
}

func TestNewProcessor_ArchiveNeedsNoTranslator(t *testing.T) {
	settings := cli.Settings{Translation: translation.DefaultConfig()}
	settings.Translation.Provider = translation.ProviderGemini

	flags := cli.NewFlags()
	flags.Archive = true

	_, err := NewProcessor(context.Background(), flags, settings, nil)
	assert.NoError(t, err)
}
