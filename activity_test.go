package strs

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/goliatone/go-strings/pkg/activity"
)

func TestWithActivityHooksClonesAndFiltersNil(t *testing.T) {
	hook := activity.HookFunc(func(context.Context, activity.Event) error { return nil })

	s := newEn(t, WithActivityHooks(activity.Hooks{nil, hook}))
	hooks := s.ActivityHooks()
	if len(hooks) != 1 {
		t.Fatalf("expected 1 hook, got %d", len(hooks))
	}

	hooks[0] = nil
	again := s.ActivityHooks()
	if len(again) != 1 || again[0] == nil {
		t.Fatalf("expected cloned hooks unaffected by mutation, got %+v", again)
	}
}

func TestActivityHooksDefaultNil(t *testing.T) {
	if hooks := newEn(t).ActivityHooks(); hooks != nil {
		t.Fatalf("expected nil hooks by default, got %+v", hooks)
	}
}

func TestGetStringEmitsLookupProblems(t *testing.T) {
	capture := &activity.CaptureHook{}
	s := newEsEn(t,
		WithActivityHooks(activity.Hooks{capture}),
		WithActivityChannel("ui"),
		WithActivityIdentity("actor-1", "tenant-1"),
	)

	_ = s.GetString("monkey")
	_ = s.GetString("missing/key")
	_ = s.GetString("intro")
	_ = s.GetString("substitution", map[string]any{})

	want := []string{
		activity.VerbStringMissing,
		activity.VerbStringBadType,
		activity.VerbSubstitutionMissing,
	}
	if got := capture.Verbs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("verbs = %v, want %v", got, want)
	}

	missing := capture.Events[0]
	if missing.ObjectID != "missing/key" || missing.Channel != "ui" || missing.ActorID != "actor-1" || missing.TenantID != "tenant-1" {
		t.Fatalf("unexpected missing event %+v", missing)
	}
	if _, ok := missing.Metadata["table_name"]; ok {
		t.Fatalf("missing event should carry no table, got %+v", missing.Metadata)
	}

	badType := capture.Events[1]
	if badType.Metadata["kind"] != "mapping" || badType.Metadata["table_name"] != "en" || badType.Metadata["table_index"] != 1 {
		t.Fatalf("unexpected bad type metadata %+v", badType.Metadata)
	}

	sub := capture.Events[2]
	placeholders, _ := sub.Metadata["placeholders"].([]string)
	if !reflect.DeepEqual(placeholders, []string{"testKey"}) {
		t.Fatalf("unexpected placeholders %+v", sub.Metadata)
	}
}

func TestHookErrorsDoNotAffectLookups(t *testing.T) {
	capture := &activity.CaptureHook{Err: errors.New("sink down")}
	s := newEn(t, WithActivityHooks(activity.Hooks{capture}))
	if got := s.GetString("nope"); got != MissingString("nope") {
		t.Fatalf("got %q", got)
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected hook to be called once, got %d", len(capture.Events))
	}
}

func TestWithActivityDedupeReportsEachKeyOnce(t *testing.T) {
	capture := &activity.CaptureHook{}
	s := newEn(t, WithActivityHooks(activity.Hooks{capture}), WithActivityDedupe(time.Hour))

	for i := 0; i < 5; i++ {
		_ = s.GetString("missing/key")
	}
	_ = s.GetString("other/missing")

	if got := len(capture.ByVerb(activity.VerbStringMissing)); got != 2 {
		t.Fatalf("expected 2 deduplicated events, got %d", got)
	}
}
