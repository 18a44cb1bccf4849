package strs

import "testing"

func TestSuggestRanksClosePaths(t *testing.T) {
	s := newEsEn(t)
	got := s.Suggest("intro/helo", 3)
	if len(got) == 0 || got[0] != "intro/hello" {
		t.Fatalf("expected intro/hello first, got %v", got)
	}
	if len(got) > 3 {
		t.Fatalf("limit not applied: %v", got)
	}
}

func TestSuggestNoMatches(t *testing.T) {
	s := newEn(t)
	if got := s.Suggest("zzzz", 5); len(got) != 0 {
		t.Fatalf("expected nothing, got %v", got)
	}
	if got := s.Suggest("", 5); got != nil {
		t.Fatalf("empty key should suggest nothing, got %v", got)
	}
}
