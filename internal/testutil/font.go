package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/theme"
)

// WriteFont writes a TrueType font into dir and returns its path. The font
// is the one the GUI renders with, so it covers Latin text only.
func WriteFont(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "test-font.ttf")
	if err := os.WriteFile(path, theme.DefaultTextFont().Content(), 0644); err != nil {
		t.Fatalf("Failed to write font: %v", err)
	}
	return path
}
