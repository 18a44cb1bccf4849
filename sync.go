package strs

import "sync"

// SyncStrings serialises access to a Strings so it can be shared across
// goroutines. The "!" selector keeps its no-repeat guarantee under
// concurrent callers.
type SyncStrings struct {
	mu      sync.Mutex
	strings *Strings
}

// Synchronized wraps s. s must not be used directly afterwards.
func Synchronized(s *Strings) *SyncStrings {
	return &SyncStrings{strings: s}
}

// GetString is Strings.GetString under the lock.
func (s *SyncStrings) GetString(key string, subs ...any) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strings.GetString(key, subs...)
}

// GetStringCount is Strings.GetStringCount under the lock.
func (s *SyncStrings) GetStringCount(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strings.GetStringCount(key)
}

// HasString is Strings.HasString under the lock.
func (s *SyncStrings) HasString(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strings.HasString(key)
}

// FindAllStringKeys is Strings.FindAllStringKeys under the lock.
func (s *SyncStrings) FindAllStringKeys(parentKey string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strings.FindAllStringKeys(parentKey)
}

// Resolve is Strings.Resolve under the lock.
func (s *SyncStrings) Resolve(key string) (Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strings.Resolve(key)
}

// ResolveWithTrace is Strings.ResolveWithTrace under the lock.
func (s *SyncStrings) ResolveWithTrace(key string) (Value, Trace, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strings.ResolveWithTrace(key)
}

// ResetSelections is Strings.ResetSelections under the lock.
func (s *SyncStrings) ResetSelections() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strings.ResetSelections()
}

// Capitalize does not touch shared state and needs no lock.
func (s *SyncStrings) Capitalize(str string) string {
	return s.strings.Capitalize(str)
}

// CapitalizeFirstOnly does not touch shared state and needs no lock.
func (s *SyncStrings) CapitalizeFirstOnly(str string) string {
	return s.strings.CapitalizeFirstOnly(str)
}
