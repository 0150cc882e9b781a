package processor

import (
	"github.com/sirupsen/logrus"

	"codeberg.org/snonux/vocabquiz/internal/gui"
)

// RunGUIMode launches the GUI application
func (p *Processor) RunGUIMode() error {
	guiConfig := &gui.Config{Service: p}
	if logger, ok := p.logger.(*logrus.Logger); ok {
		guiConfig.Logger = logger
	}

	app := gui.New(guiConfig)
	app.Run()

	return nil
}
