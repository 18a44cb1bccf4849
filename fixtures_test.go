package strs

import "testing"

func enData() map[string]any {
	return map[string]any{
		"monkey": "monkey",
		"intro": map[string]any{
			"hello": "Hello!",
			"bye":   "Goodbye, {{0}}! I hope you enjoyed seeing {{1}}!",
			"options": map[string]any{
				"copy":  "Copy",
				"paste": "Paste",
			},
		},
		"choices":      []any{"Yes", "No"},
		"thing":        map[string]any{"name": "Thing"},
		"substitution": "Wow this one {{testKey}} has a key!",
	}
}

func esData() map[string]any {
	return map[string]any{
		"monkey": "mono",
		"extra":  "Extra",
	}
}

// sequenceRandom returns picks in order, wrapping modulo n.
func sequenceRandom(picks ...int) RandomSource {
	next := 0
	return RandomSourceFunc(func(n int) int {
		if len(picks) == 0 {
			return 0
		}
		pick := picks[next%len(picks)] % n
		next++
		return pick
	})
}

func newEn(t *testing.T, opts ...Option) *Strings {
	t.Helper()
	s, err := NewFromData(enData(), opts...)
	if err != nil {
		t.Fatalf("new en: %v", err)
	}
	return s
}

func newEsEn(t *testing.T, opts ...Option) *Strings {
	t.Helper()
	es, err := NewTable("es", esData())
	if err != nil {
		t.Fatalf("es table: %v", err)
	}
	en, err := NewTable("en", enData())
	if err != nil {
		t.Fatalf("en table: %v", err)
	}
	s, err := New([]Table{es, en}, opts...)
	if err != nil {
		t.Fatalf("new es/en: %v", err)
	}
	return s
}
