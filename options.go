package strs

import (
	"time"

	"golang.org/x/text/language"

	"github.com/goliatone/go-strings/pkg/activity"
)

// Option configures a Strings instance.
type Option func(*config)

type config struct {
	random   RandomSource
	logger   ResolveLogger
	hooks    activity.Hooks
	channel  string
	actorID  string
	tenantID string
	language language.Tag
	dedupe   time.Duration
}

func applyOptions(opts []Option) config {
	cfg := config{
		random:   globalRandom{},
		logger:   noopResolveLogger{},
		channel:  "strings",
		language: language.Und,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithRandomSource replaces the random source used by the "?" and "!"
// selectors.
func WithRandomSource(random RandomSource) Option {
	return func(cfg *config) {
		if random == nil {
			cfg.random = globalRandom{}
			return
		}
		cfg.random = random
	}
}

// WithLanguage sets the language whose casing rules Capitalize and
// CapitalizeFirstOnly follow (Turkish dotted I, for example).
func WithLanguage(tag language.Tag) Option {
	return func(cfg *config) {
		cfg.language = tag
	}
}
