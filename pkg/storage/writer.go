package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"redscraper/pkg/models"
)

// StdoutPath selects standard output instead of a file.
const StdoutPath = "-"

// Writer materializes scrape results as JSON.
type Writer struct {
	path string
}

// NewWriter creates a writer targeting path. The path "-" writes to standard
// output.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the destination path.
func (w *Writer) Path() string {
	return w.path
}

// Write renders posts as a two-space indented JSON array and writes it to the
// destination. A nil slice still renders as an empty array.
func (w *Writer) Write(posts []models.Post) error {
	if posts == nil {
		posts = []models.Post{}
	}

	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal posts: %w", err)
	}
	data = append(data, '\n')

	if w.path == StdoutPath {
		_, err := os.Stdout.Write(data)
		return err
	}

	return w.writeFile(data)
}

// writeFile lands the result through a temporary file in the target
// directory followed by a rename, so a crash mid-write never leaves a
// truncated result behind.
func (w *Writer) writeFile(data []byte) error {
	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	tempFile := w.path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tempFile, w.path); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
