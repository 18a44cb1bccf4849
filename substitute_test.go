package strs

import (
	"testing"
	"time"
)

type badge struct{ label string }

func (b badge) String() string { return "[" + b.label + "]" }

func TestSubstitute(t *testing.T) {
	cases := []struct {
		name     string
		template string
		subs     Substitutions
		want     string
	}{
		{name: "positional", template: "{{0}} and {{1}}", subs: Positional("a", "b"), want: "a and b"},
		{name: "repeated token", template: "{{0}}{{0}}", subs: Positional("x"), want: "xx"},
		{name: "named", template: "hi {{name}}", subs: Named(map[string]any{"name": "Ana"}), want: "hi Ana"},
		{name: "missing positional", template: "{{0}} {{2}}", subs: Positional("a"), want: "a ERROR-NO-SUB-2"},
		{name: "missing named", template: "{{who}}", subs: Named(map[string]any{}), want: "ERROR-NO-SUB-who"},
		{name: "named token against list", template: "{{who}}", subs: Positional("a"), want: "ERROR-NO-SUB-who"},
		{name: "no args", template: "{{0}}", subs: Substitutions{}, want: "{{0}}"},
		{name: "empty list", template: "{{0}}", subs: Positional(), want: "{{0}}"},
		{name: "no tokens", template: "plain", subs: Positional("a"), want: "plain"},
		{name: "not rescanned", template: "{{0}}", subs: Positional("{{0}}"), want: "{{0}}"},
		{name: "invalid token left alone", template: "{{a-b}} {{ 0 }}", subs: Positional("x"), want: "{{a-b}} {{ 0 }}"},
		{name: "stringer", template: "{{0}}", subs: Positional(badge{"new"}), want: "[new]"},
		{name: "number", template: "{{0}}", subs: Positional(2.5), want: "2.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Substitute(tc.template, tc.subs); got != tc.want {
				t.Fatalf("Substitute(%q) = %q, want %q", tc.template, got, tc.want)
			}
		})
	}
}

func TestSubstitutionsFrom(t *testing.T) {
	if !substitutionsFrom(nil).IsZero() {
		t.Fatalf("no args should be zero")
	}
	if got := Substitute("{{0}}-{{1}}", substitutionsFrom([]any{"a", "b"})); got != "a-b" {
		t.Fatalf("variadic args: %q", got)
	}
	if got := Substitute("{{0}}", substitutionsFrom([]any{[]int{7}})); got != "7" {
		t.Fatalf("typed slice: %q", got)
	}
	if got := Substitute("{{k}}", substitutionsFrom([]any{map[string]string{"k": "v"}})); got != "v" {
		t.Fatalf("string map: %q", got)
	}
	if got := Substitute("{{k}}", substitutionsFrom([]any{Mapping(map[string]Value{"k": Number(1)})})); got != "1" {
		t.Fatalf("value mapping: %q", got)
	}
	if got := Substitute("{{0}}", substitutionsFrom([]any{time.Duration(0)})); got != "0s" {
		t.Fatalf("single scalar should be positional, got %q", got)
	}
	explicit := Named(map[string]any{"a": "b"})
	if got := Substitute("{{a}}", substitutionsFrom([]any{explicit})); got != "b" {
		t.Fatalf("explicit substitutions: %q", got)
	}
}

func TestMissingTokens(t *testing.T) {
	got := missingTokens("{{a}} {{b}} {{a}}", Named(map[string]any{"b": 1}))
	if len(got) != 1 || got[0] != "a" {
		t.Fatalf("unexpected missing tokens %v", got)
	}
	if missingTokens("{{a}}", Substitutions{}) != nil {
		t.Fatalf("no args should report nothing")
	}
}

func TestSubstituteRejectsNonCanonicalIndices(t *testing.T) {
	got := Substitute("{{01}} {{00}} {{0}} {{1}}", Positional("a", "b"))
	want := "ERROR-NO-SUB-01 ERROR-NO-SUB-00 a b"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
