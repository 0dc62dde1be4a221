// Package logger provides structured logging for the scraper.
//
// It wraps zerolog behind a small interface with support for:
// - Multiple log levels (Debug, Info, Warn, Error, Fatal)
// - Structured logging with fields
// - Pretty console output with colors, or raw JSON
// - Optional file output alongside the console
//
// Loggers are explicit values: one is created at run start and threaded
// through every component. There is no package-level singleton; components
// that may receive a nil logger can normalize it with OrNop.
//
// Basic usage:
//
//	log, err := logger.New(&cfg.Logging)
//	if err != nil {
//	    return err
//	}
//
//	log.Info("run started")
//	log.WithFields(logger.PostFields("r/golang", "1abc2d")).Info("post discovered")
//	log.WithError(err).Error("comment fetch failed")
//
// Structured logging:
//
//	log.InfoWithFields("listing pass finished", map[string]interface{}{
//	    "posts":   42,
//	    "elapsed": time.Since(start),
//	})
//
// Tests assert on log output through TestLogger, which captures entries
// in memory instead of writing them anywhere.
package logger
