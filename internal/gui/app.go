package gui

import (
	"context"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
	"github.com/sirupsen/logrus"

	"codeberg.org/snonux/vocabquiz/internal"
	"codeberg.org/snonux/vocabquiz/internal/quiz"
)

// QuizService is the quiz flow the GUI drives
type QuizService interface {
	StartSession(ctx context.Context) (*quiz.Session, error)
	Grade(ctx context.Context, s *quiz.Session, answers quiz.AnswerLookup, progress quiz.ProgressFunc) ([]quiz.GradedResult, error)
	Download(s *quiz.Session) (string, error)
	IsCurrent(s *quiz.Session) bool
}

// Config holds GUI application configuration
type Config struct {
	Service QuizService
	// Logger, when set, is mirrored into the log viewer
	Logger *logrus.Logger
}

// Application represents the main GUI application
type Application struct {
	app    fyne.App
	window fyne.Window

	startButton    *ttwidget.Button
	submitButton   *ttwidget.Button
	downloadButton *ttwidget.Button
	statusLabel    *widget.Label
	rowsBox        *fyne.Container
	rows           []*wordRow
	logViewer      *LogViewer

	service QuizService
	logger  *logrus.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	session *quiz.Session
}

// wordRow is one numbered word with its answer entry and graded result
type wordRow struct {
	label  *widget.Label
	entry  *widget.Entry
	result *widget.Label
}

// New creates a new GUI application
func New(config *Config) *Application {
	myApp := app.NewWithID("org.codeberg.snonux.vocabquiz")
	return newApplication(myApp, config)
}

func newApplication(fyneApp fyne.App, config *Config) *Application {
	ctx, cancel := context.WithCancel(context.Background())
	a := &Application{
		app:     fyneApp,
		service: config.Service,
		logger:  config.Logger,
		ctx:     ctx,
		cancel:  cancel,
	}
	a.setupUI()
	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("vocabquiz v%s - Vocabulary Test", internal.Version))
	a.window.Resize(fyne.NewSize(720, 800))

	// Tooltips are set once the tooltip layer exists
	a.startButton = ttwidget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), a.onStart)
	a.submitButton = ttwidget.NewButtonWithIcon("Submit", theme.ConfirmIcon(), a.onSubmit)
	a.submitButton.Importance = widget.HighImportance
	a.downloadButton = ttwidget.NewButtonWithIcon("Download", theme.DownloadIcon(), a.onDownload)
	a.submitButton.Disable()
	a.downloadButton.Disable()

	toolbar := container.NewHBox(
		a.startButton,
		widget.NewSeparator(),
		a.submitButton,
		a.downloadButton,
	)

	a.statusLabel = widget.NewLabel("Press Start to draw words from the word bank")
	a.rowsBox = container.NewVBox()

	a.logViewer = NewLogViewer()
	if a.logger != nil {
		a.logger.AddHook(a.logViewer)
	}

	quizSection := container.NewVSplit(
		container.NewScroll(a.rowsBox),
		a.logViewer,
	)
	quizSection.SetOffset(0.75)

	content := container.NewBorder(
		container.NewVBox(toolbar, widget.NewSeparator()),
		a.statusLabel,
		nil, nil,
		quizSection,
	)

	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.setupTooltips()

	a.window.SetOnClosed(func() {
		a.cancel()
		a.wg.Wait()
	})

	a.setupKeyboardShortcuts()
}

// setupTooltips sets up all tooltips after the tooltip layer has been created
func (a *Application) setupTooltips() {
	a.startButton.SetToolTip("Draw a new set of words (Ctrl+N)")
	a.submitButton.SetToolTip("Look up reference translations (Ctrl+Enter)")
	a.downloadButton.SetToolTip("Save the results as PDF (Ctrl+S)")
}

func (a *Application) setupKeyboardShortcuts() {
	shortcuts := []struct {
		key    fyne.KeyName
		button *ttwidget.Button
		action func()
	}{
		{fyne.KeyN, a.startButton, a.onStart},
		{fyne.KeyReturn, a.submitButton, a.onSubmit},
		{fyne.KeyS, a.downloadButton, a.onDownload},
	}

	for _, s := range shortcuts {
		button, action := s.button, s.action
		a.window.Canvas().AddShortcut(
			&desktop.CustomShortcut{KeyName: s.key, Modifier: fyne.KeyModifierControl},
			func(fyne.Shortcut) {
				if !button.Disabled() {
					action()
				}
			},
		)
	}
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.ShowAndRun()
}
