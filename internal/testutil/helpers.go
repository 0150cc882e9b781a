// Package testutil holds fixtures shared by the package tests: word bank
// files, a fake translation endpoint and a recording translator.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteWordBank writes a word bank document with words into dir and
// returns its path
func WriteWordBank(t *testing.T, dir string, words ...string) string {
	t.Helper()

	type entry struct {
		Word string `json:"word"`
	}
	doc := struct {
		Words []entry `json:"words"`
	}{Words: make([]entry, 0, len(words))}
	for _, w := range words {
		doc.Words = append(doc.Words, entry{Word: w})
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to encode word bank: %v", err)
	}

	path := filepath.Join(dir, "word_bank.json")
	CreateTestFile(t, path, data)
	return path
}

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertFileContains checks if a file contains a substring
func AssertFileContains(t *testing.T, path string, substring string) {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	if !strings.Contains(string(content), substring) {
		t.Errorf("File %s does not contain expected substring: %q", path, substring)
	}
}
