// Package strs resolves display strings from an ordered stack of nested
// tables, typically one table per locale with the most specific first.
//
// Keys are "/" separated paths. Each table is tried in order and the first
// one that resolves the whole key wins:
//
//	s, _ := strs.NewFromData([]any{es, en})
//	s.GetString("intro/hello")           // es, falling back to en
//	s.GetString("intro/bye", "Bob")      // fills {{0}}
//	s.GetString("greeting", map[string]any{"name": "Ana"})
//
// A segment applied to a sequence selects an element: a plain index ("2"), a
// clamped index ("b7"), a random element ("?") or a random element that does
// not repeat until every element was returned ("!").
//
// Lookups never fail. Problems are rendered inline as ERROR-MISSING-STRING,
// BAD-TYPE or ERROR-NO-SUB codes, logged through a ResolveLogger and reported
// to activity hooks when configured.
package strs
