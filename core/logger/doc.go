// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production).
//
// # Correlation
//
// WithRun attaches a run_id to every entry of one CLI invocation, and WithRelation
// tags entries with the owner type and relation being reconciled, so that all
// logs of one reconciliation can be grouped.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Relation applied")
//
//	l := logger.WithRelation(log, "homepage", "content")
//	l.Error("Apply failed", zap.Error(err))
package logger
