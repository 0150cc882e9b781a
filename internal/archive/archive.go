package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNothingToArchive is returned when the results directory is missing
var ErrNothingToArchive = errors.New("results directory does not exist")

const stampLayout = "20060102-150405"

// ArchiveResults moves the results directory to
// <parent>/archive/results-<timestamp> and returns the new location.
// The next export recreates an empty results directory.
func ArchiveResults(resultsDir string, now time.Time) (string, error) {
	if _, err := os.Stat(resultsDir); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNothingToArchive, resultsDir)
		}
		return "", err
	}

	archiveDir := filepath.Join(filepath.Dir(resultsDir), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	base := filepath.Base(resultsDir)
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s", base, now.Format(stampLayout)))
	for n := 1; exists(archivePath); n++ {
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s.%d", base, now.Format(stampLayout), n))
	}

	if err := os.Rename(resultsDir, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive results directory: %w", err)
	}
	return archivePath, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
