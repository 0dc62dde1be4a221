package storage

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"redscraper/pkg/models"
)

func testPosts() []models.Post {
	return []models.Post{
		{
			ID:        "abc123",
			Subreddit: "r/golang",
			Title:     "Generics in practice",
			CreatedAt: "2024-01-01T17:30:00",
			Comments: []models.Comment{
				{ID: "xyz789", Text: "nice write-up", CreatedAt: "2024-01-01T18:45:10"},
			},
		},
		{
			ID:        "def456",
			Subreddit: "r/rust",
			Title:     "Borrow checker war stories",
			CreatedAt: "2024-01-02T09:00:00",
			Comments:  []models.Comment{},
		},
	}
}

func TestWriterWritesIndentedJSON(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "output.json")

	writer := NewWriter(path)
	if writer.Path() != path {
		t.Errorf("Expected path %s, got %s", path, writer.Path())
	}

	if err := writer.Write(testPosts()); err != nil {
		t.Fatalf("Failed to write posts: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	content := string(data)
	if !strings.HasPrefix(content, "[\n  {\n    \"id\": \"abc123\",") {
		t.Errorf("Output is not a two-space indented array:\n%s", content)
	}
	if !strings.HasSuffix(content, "]\n") {
		t.Error("Output does not end with a newline-terminated array")
	}

	// The document must round-trip with every field intact.
	var decoded []models.Post
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("Expected 2 posts, got %d", len(decoded))
	}
	if decoded[0].Title != "Generics in practice" {
		t.Errorf("Unexpected title: %s", decoded[0].Title)
	}
	if len(decoded[0].Comments) != 1 || decoded[0].Comments[0].Text != "nice write-up" {
		t.Errorf("Comments did not survive the round trip: %+v", decoded[0].Comments)
	}
}

func TestWriterEmptyCommentsStayArray(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "output.json")

	if err := NewWriter(path).Write(testPosts()); err != nil {
		t.Fatalf("Failed to write posts: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	// A post without comments carries [] on the wire, never null.
	if strings.Contains(string(data), "null") {
		t.Errorf("Output contains null:\n%s", string(data))
	}
	if !strings.Contains(string(data), "\"comments\": []") {
		t.Errorf("Empty comments did not render as []:\n%s", string(data))
	}
}

func TestWriterNilPosts(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "output.json")

	if err := NewWriter(path).Write(nil); err != nil {
		t.Fatalf("Failed to write nil posts: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("Expected empty array, got %q", string(data))
	}
}

func TestWriterLeavesNoTempFile(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "output.json")

	if err := NewWriter(path).Write(testPosts()); err != nil {
		t.Fatalf("Failed to write posts: %v", err)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("Temporary file was left behind")
	}
}

func TestWriterOverwritesExisting(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "output.json")

	if err := os.WriteFile(path, []byte("stale"), 0644); err != nil {
		t.Fatalf("Failed to seed stale file: %v", err)
	}

	if err := NewWriter(path).Write(nil); err != nil {
		t.Fatalf("Failed to overwrite: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("Stale content survived: %q", string(data))
	}
}

func TestWriterCreatesParentDirectories(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "nested", "deeper", "output.json")

	if err := NewWriter(path).Write(testPosts()); err != nil {
		t.Fatalf("Failed to write into nested path: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("Output file missing: %v", err)
	}
}

func TestWriterStdout(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	writeErr := NewWriter(StdoutPath).Write(testPosts())
	w.Close()
	os.Stdout = orig

	if writeErr != nil {
		t.Fatalf("Failed to write to stdout: %v", writeErr)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("Failed to read captured stdout: %v", err)
	}

	var decoded []models.Post
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Stdout output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Errorf("Expected 2 posts on stdout, got %d", len(decoded))
	}
}
