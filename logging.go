package strs

import (
	"context"
	"log/slog"
	"time"
)

// Outcome classifies a GetString call.
type Outcome string

const (
	OutcomeFound               Outcome = "found"
	OutcomeMissing             Outcome = "missing"
	OutcomeBadType             Outcome = "bad_type"
	OutcomeMissingSubstitution Outcome = "missing_substitution"
)

// ResolveLogEvent describes one GetString call for logging.
type ResolveLogEvent struct {
	Key      string
	Outcome  Outcome
	Table    string
	Duration time.Duration
}

// ResolveLogger records resolve events.
type ResolveLogger interface {
	LogResolve(ResolveLogEvent)
}

// ResolveLoggerFunc adapts a function to ResolveLogger.
type ResolveLoggerFunc func(ResolveLogEvent)

// LogResolve implements ResolveLogger.
func (f ResolveLoggerFunc) LogResolve(event ResolveLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopResolveLogger struct{}

func (noopResolveLogger) LogResolve(ResolveLogEvent) {}

// WithResolveLogger attaches a resolve logger.
func WithResolveLogger(logger ResolveLogger) Option {
	return func(cfg *config) {
		if logger == nil {
			cfg.logger = noopResolveLogger{}
			return
		}
		cfg.logger = logger
	}
}

// SlogResolveLogger reports misses and bad types at Warn and hits at Debug.
func SlogResolveLogger(logger *slog.Logger) ResolveLogger {
	if logger == nil {
		return noopResolveLogger{}
	}
	return ResolveLoggerFunc(func(event ResolveLogEvent) {
		level := slog.LevelDebug
		if event.Outcome != OutcomeFound {
			level = slog.LevelWarn
		}
		logger.LogAttrs(context.Background(), level, "strs: resolve",
			slog.String("key", event.Key),
			slog.String("outcome", string(event.Outcome)),
			slog.String("table", event.Table),
			slog.Duration("duration", event.Duration),
		)
	})
}
