package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathFor(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{"json output", "output.json", "output.report.json"},
		{"nested path", "results/posts.json", "results/posts.report.json"},
		{"no extension", "output", "output.report"},
		{"stdout", "-", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PathFor(tt.output))
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.report.json")

	started := time.Date(2024, 1, 1, 17, 30, 0, 0, time.UTC)
	original := &Report{
		Query:      "golang generics",
		Keywords:   []string{"golang", "generics"},
		Posts:      3,
		Comments:   12,
		Abandoned:  1,
		OutputPath: "output.json",
		StartedAt:  started,
		FinishedAt: started.Add(42 * time.Second),
		ElapsedMS:  42000,
	}

	require.NoError(t, original.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
