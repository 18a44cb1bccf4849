package strs

import (
	"fmt"
	"strings"
)

// Inline error codes. Query operations never return Go errors; these codes end
// up in the rendered text instead.
const (
	MissingStringPrefix       = "ERROR-MISSING-STRING: "
	BadTypePrefix             = "BAD-TYPE: "
	MissingSubstitutionPrefix = "ERROR-NO-SUB-"
)

// MissingString renders the code returned for a key no table contains.
func MissingString(key string) string {
	return MissingStringPrefix + quoteKey(key)
}

// BadType renders the code returned for a key that resolves to a non-string.
func BadType(key string) string {
	return BadTypePrefix + quoteKey(key)
}

// MissingSubstitution renders the code that replaces an unfilled token.
func MissingSubstitution(name string) string {
	return MissingSubstitutionPrefix + name
}

// IsErrorText reports whether s is (or contains) one of the inline codes.
func IsErrorText(s string) bool {
	return strings.HasPrefix(s, MissingStringPrefix) ||
		strings.HasPrefix(s, BadTypePrefix) ||
		strings.Contains(s, MissingSubstitutionPrefix)
}

func quoteKey(key string) string {
	return `"` + key + `"`
}

// TableError captures which table failed validation alongside the cause.
type TableError struct {
	Table string
	Index int
	Err   error
}

func (e *TableError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("strs: table %s: %v", describeTable(e.Table, e.Index), e.Err)
}

func (e *TableError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeTable(name string, index int) string {
	switch {
	case name != "" && index >= 0:
		return fmt.Sprintf("%q (index %d)", name, index)
	case name != "":
		return fmt.Sprintf("%q", name)
	case index >= 0:
		return fmt.Sprintf("index %d", index)
	default:
		return "<unnamed>"
	}
}
