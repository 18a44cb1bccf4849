package activity

import (
	"strings"
	"time"
)

// Verbs emitted for lookup problems.
const (
	VerbStringMissing       = "strings.missing"
	VerbStringBadType       = "strings.bad_type"
	VerbSubstitutionMissing = "strings.substitution.missing"
)

// ObjectTypeStringKey is the object type shared by all string events.
const ObjectTypeStringKey = "strings.key"

// TableContext captures the table that answered (or last failed) a lookup.
type TableContext struct {
	Name       string
	Label      string
	Index      int
	SnapshotID string
}

// StringEventInput describes the common fields for lookup events.
type StringEventInput struct {
	ActorID      string
	TenantID     string
	Channel      string
	Key          string
	Kind         string
	Placeholders []string
	Metadata     map[string]any
	Table        TableContext
	OccurredAt   time.Time
}

// BuildStringMissingEvent reports a key no table contains.
func BuildStringMissingEvent(input StringEventInput) Event {
	return buildStringEvent(VerbStringMissing, input)
}

// BuildStringBadTypeEvent reports a key that resolved to a non-string node.
func BuildStringBadTypeEvent(input StringEventInput) Event {
	return buildStringEvent(VerbStringBadType, input)
}

// BuildSubstitutionMissingEvent reports template tokens left unfilled.
func BuildSubstitutionMissingEvent(input StringEventInput) Event {
	return buildStringEvent(VerbSubstitutionMissing, input)
}

func buildStringEvent(verb string, input StringEventInput) Event {
	metadata := cloneMap(input.Metadata)
	key := strings.TrimSpace(input.Key)
	if key != "" {
		metadata = ensureMetadata(metadata)
		metadata["key"] = key
	}
	if input.Kind != "" {
		metadata = ensureMetadata(metadata)
		metadata["kind"] = input.Kind
	}
	if len(input.Placeholders) > 0 {
		metadata = ensureMetadata(metadata)
		metadata["placeholders"] = append([]string{}, input.Placeholders...)
	}
	if input.Table.Name != "" {
		metadata = ensureMetadata(metadata)
		metadata["table_name"] = input.Table.Name
		metadata["table_index"] = input.Table.Index
		if input.Table.Label != "" {
			metadata["table_label"] = input.Table.Label
		}
	}
	if input.Table.SnapshotID != "" {
		metadata = ensureMetadata(metadata)
		metadata["snapshot_id"] = input.Table.SnapshotID
	}

	objectID := key
	if objectID == "" {
		objectID = "<empty>"
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: ObjectTypeStringKey,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
