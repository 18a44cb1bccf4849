package strs

import (
	"sync"
	"testing"
)

func TestSynchronizedDistributedDrawsStayUnique(t *testing.T) {
	items := make([]any, 64)
	for i := range items {
		items[i] = string(rune('A'+i%26)) + string(rune('a'+i/26))
	}
	s, err := NewFromData(map[string]any{"pool": items})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	shared := Synchronized(s)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[string]int{}
	)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 8; i++ {
				value := shared.GetString("pool/!")
				mu.Lock()
				seen[value]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != len(items) {
		t.Fatalf("expected %d distinct draws, got %d", len(items), len(seen))
	}
	for value, count := range seen {
		if count != 1 {
			t.Fatalf("%q drawn %d times", value, count)
		}
	}
}

func TestSynchronizedDelegates(t *testing.T) {
	shared := Synchronized(newEsEn(t))
	if shared.GetString("monkey") != "mono" || !shared.HasString("intro") || shared.GetStringCount("choices") != 2 {
		t.Fatalf("unexpected delegation results")
	}
	if keys := shared.FindAllStringKeys("intro/options"); len(keys) != 2 {
		t.Fatalf("unexpected keys %v", keys)
	}
	if _, ok := shared.Resolve("thing"); !ok {
		t.Fatalf("expected resolve hit")
	}
	if _, _, ok := shared.ResolveWithTrace("thing/name"); !ok {
		t.Fatalf("expected trace hit")
	}
	shared.ResetSelections()
	if shared.Capitalize("a") != "A" || shared.CapitalizeFirstOnly("aB") != "Ab" {
		t.Fatalf("unexpected capitalization")
	}
}
