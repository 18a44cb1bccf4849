package strs

import (
	"context"
	"time"

	"github.com/goliatone/go-strings/pkg/activity"
)

// WithActivityHooks reports missing strings, bad types and unfilled tokens to
// hooks. Hooks are cloned and nil entries dropped.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := hooks.Clone()
	return func(cfg *config) {
		cfg.hooks = normalized
	}
}

// WithActivityChannel overrides the channel stamped on emitted events.
func WithActivityChannel(channel string) Option {
	return func(cfg *config) {
		if channel != "" {
			cfg.channel = channel
		}
	}
}

// WithActivityIdentity stamps actor and tenant ids on emitted events.
func WithActivityIdentity(actorID, tenantID string) Option {
	return func(cfg *config) {
		cfg.actorID = actorID
		cfg.tenantID = tenantID
	}
}

// WithActivityDedupe forwards each distinct verb and key at most once per
// window. Zero disables deduplication.
func WithActivityDedupe(window time.Duration) Option {
	return func(cfg *config) {
		cfg.dedupe = window
	}
}

// ActivityHooks returns a copy of the configured hooks.
func (s *Strings) ActivityHooks() activity.Hooks {
	if s == nil {
		return nil
	}
	return s.cfg.hooks.Clone()
}

func (s *Strings) emitMissing(key string) {
	if !s.emitter.Enabled() {
		return
	}
	s.emit(activity.BuildStringMissingEvent(s.eventInput(key, -1)))
}

func (s *Strings) emitBadType(key string, value Value, index int) {
	if !s.emitter.Enabled() {
		return
	}
	input := s.eventInput(key, index)
	input.Kind = value.Kind().String()
	s.emit(activity.BuildStringBadTypeEvent(input))
}

func (s *Strings) emitMissingSubstitution(key string, placeholders []string, index int) {
	if !s.emitter.Enabled() {
		return
	}
	input := s.eventInput(key, index)
	input.Placeholders = placeholders
	s.emit(activity.BuildSubstitutionMissingEvent(input))
}

func (s *Strings) eventInput(key string, index int) activity.StringEventInput {
	input := activity.StringEventInput{
		Key: key,
	}
	if index >= 0 && index < len(s.resolver.tables) {
		table := s.resolver.tables[index]
		input.Table = activity.TableContext{
			Name:       table.label(index),
			Label:      table.Label,
			Index:      index,
			SnapshotID: table.SnapshotID,
		}
	}
	return input
}

// emit drops hook errors: lookups stay total and hooks own their failures.
func (s *Strings) emit(event activity.Event) {
	_ = s.emitter.Emit(context.Background(), event)
}

func newEmitter(cfg config) *activity.Emitter {
	hooks := cfg.hooks
	if cfg.dedupe > 0 && len(hooks) > 0 {
		hooks = activity.Hooks{activity.NewDedupeHook(hooks, cfg.dedupe)}
	}
	return activity.NewEmitter(hooks, activity.Config{
		Enabled:  true,
		Channel:  cfg.channel,
		ActorID:  cfg.actorID,
		TenantID: cfg.tenantID,
	})
}
