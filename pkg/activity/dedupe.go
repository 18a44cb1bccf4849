package activity

import (
	"context"
	"sync"
	"time"
)

// DefaultDedupeWindow is used by NewDedupeHook when window is not positive.
const DefaultDedupeWindow = time.Minute

// DedupeHook forwards an event only when the same verb and object were not
// forwarded within Window. A page that renders a missing key on every request
// then reports it once per window instead of once per render.
type DedupeHook struct {
	next   ActivityHook
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	seen map[dedupeKey]time.Time
}

type dedupeKey struct {
	verb     string
	objectID string
	tenantID string
}

// NewDedupeHook wraps next.
func NewDedupeHook(next ActivityHook, window time.Duration) *DedupeHook {
	if window <= 0 {
		window = DefaultDedupeWindow
	}
	return &DedupeHook{
		next:   next,
		window: window,
		now:    time.Now,
		seen:   map[dedupeKey]time.Time{},
	}
}

// Notify forwards event unless it is a repeat inside the window. Failed
// forwards are not remembered, so the next repeat retries.
func (h *DedupeHook) Notify(ctx context.Context, event Event) error {
	if h == nil || h.next == nil {
		return nil
	}
	key := dedupeKey{verb: event.Verb, objectID: event.ObjectID, tenantID: event.TenantID}
	now := h.now()

	h.mu.Lock()
	last, ok := h.seen[key]
	if ok && now.Sub(last) < h.window {
		h.mu.Unlock()
		return nil
	}
	h.seen[key] = now
	h.prune(now)
	h.mu.Unlock()

	if err := h.next.Notify(ctx, event); err != nil {
		h.mu.Lock()
		delete(h.seen, key)
		h.mu.Unlock()
		return err
	}
	return nil
}

// prune drops expired entries. Callers hold mu.
func (h *DedupeHook) prune(now time.Time) {
	for key, at := range h.seen {
		if now.Sub(at) >= h.window {
			delete(h.seen, key)
		}
	}
}
