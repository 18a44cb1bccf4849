package strs

import (
	"testing"

	"golang.org/x/text/language"
)

func TestCapitalize(t *testing.T) {
	cases := map[string]string{
		"hello":       "Hello",
		"hello world": "Hello world",
		"hELLO":       "HELLO",
		"":            "",
		"éclair":      "Éclair",
		"1st":         "1st",
	}
	for in, want := range cases {
		if got := Capitalize(in); got != want {
			t.Fatalf("Capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCapitalizeFirstOnly(t *testing.T) {
	cases := map[string]string{
		"heLLO":       "Hello",
		"heLlO WoRlD": "Hello world",
		"":            "",
		"ÉCLAIR":      "Éclair",
	}
	for in, want := range cases {
		if got := CapitalizeFirstOnly(in); got != want {
			t.Fatalf("CapitalizeFirstOnly(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCapitalizeFollowsConfiguredLanguage(t *testing.T) {
	s := newEn(t, WithLanguage(language.Turkish))
	if got := s.Capitalize("istanbul"); got != "İstanbul" {
		t.Fatalf("expected dotted capital I, got %q", got)
	}
	if got := s.CapitalizeFirstOnly("iSTANBUL"); got != "İstanbul" {
		t.Fatalf("expected Turkish lower-casing, got %q", got)
	}
	if got := newEn(t).Capitalize("istanbul"); got != "Istanbul" {
		t.Fatalf("expected default casing, got %q", got)
	}
}
