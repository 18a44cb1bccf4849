package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

type logConfig struct {
	Level  string `help:"Set log level (debug, info, warn, error)."`
	Format string `help:"Set log format (text, json)."`
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("cli: unknown log level %q", level)
	}
}

// logger builds the process logger. Flags win over cfg.
func (l logConfig) logger(w io.Writer, cfg Config) (*slog.Logger, error) {
	level, err := parseLevel(firstNonEmpty(l.Level, cfg.LogLevel))
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	switch format := strings.ToLower(firstNonEmpty(l.Format, cfg.LogFormat)); format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("cli: unknown log format %q", format)
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
