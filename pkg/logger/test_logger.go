package logger

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// TestLogger captures log entries in memory so tests can assert on them.
// Safe for concurrent use; fetch goroutines log from many places at once.
type TestLogger struct {
	mu      sync.Mutex
	entries []Entry
	zl      zerolog.Logger
}

// Entry is one captured log call.
type Entry struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

// NewTestLogger creates an empty capturing logger.
func NewTestLogger() *TestLogger {
	return &TestLogger{zl: zerolog.Nop()}
}

func (l *TestLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	copied := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	l.entries = append(l.entries, Entry{Level: level, Message: msg, Fields: copied})
}

// Entries returns a copy of everything captured so far.
func (l *TestLogger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// EntriesByLevel filters captured entries by level ("DEBUG", "WARN", ...).
func (l *TestLogger) EntriesByLevel(level string) []Entry {
	var out []Entry
	for _, e := range l.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// HasMessage reports whether any captured message contains text.
func (l *TestLogger) HasMessage(text string) bool {
	for _, e := range l.Entries() {
		if strings.Contains(e.Message, text) {
			return true
		}
	}
	return false
}

// Clear drops everything captured so far.
func (l *TestLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = l.entries[:0]
}

func (l *TestLogger) Debug(msg string) { l.record("DEBUG", msg, nil) }
func (l *TestLogger) Info(msg string)  { l.record("INFO", msg, nil) }
func (l *TestLogger) Warn(msg string)  { l.record("WARN", msg, nil) }
func (l *TestLogger) Error(msg string) { l.record("ERROR", msg, nil) }
func (l *TestLogger) Fatal(msg string) { l.record("FATAL", msg, nil) }

func (l *TestLogger) DebugWithFields(msg string, fields map[string]interface{}) {
	l.record("DEBUG", msg, fields)
}

func (l *TestLogger) InfoWithFields(msg string, fields map[string]interface{}) {
	l.record("INFO", msg, fields)
}

func (l *TestLogger) WarnWithFields(msg string, fields map[string]interface{}) {
	l.record("WARN", msg, fields)
}

func (l *TestLogger) ErrorWithFields(msg string, fields map[string]interface{}) {
	l.record("ERROR", msg, fields)
}

func (l *TestLogger) FatalWithFields(msg string, fields map[string]interface{}) {
	l.record("FATAL", msg, fields)
}

func (l *TestLogger) WithField(key string, value interface{}) Logger {
	return &testChild{root: l, fields: map[string]interface{}{key: value}}
}

func (l *TestLogger) WithFields(fields map[string]interface{}) Logger {
	return &testChild{root: l, fields: fields}
}

func (l *TestLogger) WithError(err error) Logger {
	if err == nil {
		return l
	}
	return l.WithField("error", err.Error())
}

func (l *TestLogger) WithContext(ctx context.Context) Logger { return l }

func (l *TestLogger) GetZerolog() *zerolog.Logger { return &l.zl }

// testChild carries bound fields back to the root TestLogger.
type testChild struct {
	root   *TestLogger
	fields map[string]interface{}
}

func (c *testChild) merge(extra map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(c.fields)+len(extra))
	for k, v := range c.fields {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

func (c *testChild) Debug(msg string) { c.root.record("DEBUG", msg, c.fields) }
func (c *testChild) Info(msg string)  { c.root.record("INFO", msg, c.fields) }
func (c *testChild) Warn(msg string)  { c.root.record("WARN", msg, c.fields) }
func (c *testChild) Error(msg string) { c.root.record("ERROR", msg, c.fields) }
func (c *testChild) Fatal(msg string) { c.root.record("FATAL", msg, c.fields) }

func (c *testChild) DebugWithFields(msg string, fields map[string]interface{}) {
	c.root.record("DEBUG", msg, c.merge(fields))
}

func (c *testChild) InfoWithFields(msg string, fields map[string]interface{}) {
	c.root.record("INFO", msg, c.merge(fields))
}

func (c *testChild) WarnWithFields(msg string, fields map[string]interface{}) {
	c.root.record("WARN", msg, c.merge(fields))
}

func (c *testChild) ErrorWithFields(msg string, fields map[string]interface{}) {
	c.root.record("ERROR", msg, c.merge(fields))
}

func (c *testChild) FatalWithFields(msg string, fields map[string]interface{}) {
	c.root.record("FATAL", msg, c.merge(fields))
}

func (c *testChild) WithField(key string, value interface{}) Logger {
	return &testChild{root: c.root, fields: c.merge(map[string]interface{}{key: value})}
}

func (c *testChild) WithFields(fields map[string]interface{}) Logger {
	return &testChild{root: c.root, fields: c.merge(fields)}
}

func (c *testChild) WithError(err error) Logger {
	if err == nil {
		return c
	}
	return c.WithField("error", err.Error())
}

func (c *testChild) WithContext(ctx context.Context) Logger { return c }

func (c *testChild) GetZerolog() *zerolog.Logger { return c.root.GetZerolog() }
