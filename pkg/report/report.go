// Package report captures run metadata alongside the scrape output. Teams
// running recurring scrapes use the report files to track result volume over
// time without parsing the outputs themselves.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Report summarizes one scrape run. It is written next to the output file
// when output.write_report is enabled.
type Report struct {
	Query      string    `json:"query"`
	Keywords   []string  `json:"keywords"`
	Posts      int       `json:"posts"`
	Comments   int       `json:"comments"`
	Abandoned  int       `json:"abandoned_fetches"`
	OutputPath string    `json:"output_path"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	ElapsedMS  int64     `json:"elapsed_ms"`
}

// PathFor derives the report path for an output file: "output.json" becomes
// "output.report.json". Stdout output has no report path and yields "".
func PathFor(outputPath string) string {
	if outputPath == "" || outputPath == "-" {
		return ""
	}
	ext := filepath.Ext(outputPath)
	return strings.TrimSuffix(outputPath, ext) + ".report" + ext
}

// Save writes the report as indented JSON.
func (r *Report) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}

	return nil
}

// Load reads a report back from disk.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	return &r, nil
}
