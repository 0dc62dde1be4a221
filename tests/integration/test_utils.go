package integration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"redscraper/pkg/config"
	"redscraper/pkg/logger"
)

// TestHelper provides common test utilities
type TestHelper struct {
	t       *testing.T
	tempDir string
	log     *logger.TestLogger
}

// NewTestHelper creates a new test helper. The scratch directory is removed
// automatically when the test finishes.
func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{
		t:       t,
		tempDir: t.TempDir(),
		log:     logger.NewTestLogger(),
	}
}

// OutputPath returns a path for name under the scratch directory.
func (h *TestHelper) OutputPath(name string) string {
	return filepath.Join(h.tempDir, name)
}

// CreateTestLogger returns the capturing logger for this test.
func (h *TestHelper) CreateTestLogger() *logger.TestLogger {
	return h.log
}

// CreateTestConfig creates a test configuration with delays and backoffs
// shrunk to milliseconds and output pointed at the scratch directory.
func (h *TestHelper) CreateTestConfig() *config.Config {
	cfg := config.DefaultConfig()

	cfg.Scrape.ScrollDelay = config.Duration(time.Millisecond)
	cfg.Scrape.PostStallLimit = 2
	cfg.Scrape.CommentStallLimit = 1
	cfg.Scrape.ConcurrentFetches = 3

	cfg.Retry.MaxAttempts = 2
	cfg.Retry.InitialBackoff = config.Duration(time.Millisecond)
	cfg.Retry.MaxBackoff = config.Duration(2 * time.Millisecond)

	cfg.Output.Path = h.OutputPath("output.json")
	return cfg
}

// AssertFileExists checks if a file exists
func (h *TestHelper) AssertFileExists(path string) {
	h.t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		h.t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertNoError fails the test if err is not nil
func (h *TestHelper) AssertNoError(err error) {
	h.t.Helper()
	if err != nil {
		h.t.Fatalf("Unexpected error: %v", err)
	}
}
