// Package retry provides backoff and retry logic for handling transient
// failures, particularly detail-page fetches through a browser surface.
//
// Features:
//   - Multiple backoff strategies (exponential, linear, constant)
//   - Jitter on computed delays
//   - Context support for cancellation
//   - Configurable retry predicates
//   - Integration with the scraper error types
//
// Basic usage:
//
//	// Simple retry with defaults
//	err := retry.Do(func() error {
//		return fetchComments(ctx, post)
//	}, nil)
//
//	// Custom configuration
//	cfg := &retry.Config{
//		MaxAttempts: 5,
//		Backoff: &retry.ExponentialBackoff{
//			BaseDelay:    2 * time.Second,
//			MaxDelay:     30 * time.Second,
//			Multiplier:   2.0,
//			JitterFactor: 0.1,
//		},
//		RetryIf: retry.DefaultRetryIf,
//		Context: ctx,
//		Logger:  log,
//	}
//	err := retry.Do(operation, cfg)
//
// Retry decisions:
//
// DefaultRetryIf consults the error taxonomy in pkg/errors. Surface errors
// and unclassified errors are retried; parse errors, exhausted-retry errors,
// configuration errors, and context cancellation are returned immediately.
package retry
