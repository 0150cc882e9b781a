package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"codeberg.org/snonux/vocabquiz/internal/quiz"
)

// DefaultCSVName is the file name used for CSV exports
const DefaultCSVName = "vocab_results.csv"

// WriteCSV writes one row per result after a header row
func WriteCSV(w io.Writer, results []quiz.GradedResult) error {
	if len(results) == 0 {
		return &ExportError{Format: "csv", Err: ErrNoResults}
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"#", "Word", "Your answer", "Reference"}); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, r := range results {
		record := []string{strconv.Itoa(i + 1), r.Word, r.StudentAnswer, r.ReferenceTranslation}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCSVFile writes the CSV export into dir and returns the written path
func WriteCSVFile(dir string, results []quiz.GradedResult) (string, error) {
	if len(results) == 0 {
		return "", &ExportError{Format: "csv", Err: ErrNoResults}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, DefaultCSVName)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	if err := WriteCSV(file, results); err != nil {
		return "", err
	}
	return path, nil
}
