package logger

import (
	"context"

	"github.com/rs/zerolog"
)

// PostFields builds the standard log fields identifying one post.
func PostFields(subreddit, id string) map[string]interface{} {
	return map[string]interface{}{
		"subreddit": subreddit,
		"post_id":   id,
	}
}

// AttemptFields builds the standard log fields for one fetch attempt.
func AttemptFields(subreddit, id string, attempt int) map[string]interface{} {
	fields := PostFields(subreddit, id)
	fields["attempt"] = attempt
	return fields
}

// NewNopLogger creates a logger that discards everything. Useful for tests
// and as a default when a caller passes nil.
func NewNopLogger() Logger {
	return &nopLogger{}
}

// OrNop returns l, or a nop logger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NewNopLogger()
	}
	return l
}

type nopLogger struct{}

func (n *nopLogger) Debug(msg string)                                          {}
func (n *nopLogger) Info(msg string)                                           {}
func (n *nopLogger) Warn(msg string)                                           {}
func (n *nopLogger) Error(msg string)                                          {}
func (n *nopLogger) Fatal(msg string)                                          {}
func (n *nopLogger) WithField(key string, value interface{}) Logger            { return n }
func (n *nopLogger) WithFields(fields map[string]interface{}) Logger           { return n }
func (n *nopLogger) WithError(err error) Logger                                { return n }
func (n *nopLogger) WithContext(ctx context.Context) Logger                    { return n }
func (n *nopLogger) DebugWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) InfoWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) WarnWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) ErrorWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) FatalWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) GetZerolog() *zerolog.Logger                               { return nil }
