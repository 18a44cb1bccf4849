// Package catalog loads string tables from persistent stores and assembles
// them into a strs.Strings ordered by locale preference.
//
// Responsibilities:
//   - Store only loads/saves a single table for a single Ref (domain + locale).
//   - Resolver loads the tables of a locale chain and stacks them, most
//     specific locale first.
//   - The strs package stays persistence-agnostic; all storage concerns live
//     behind Store implementations (memory, file system, Redis).
//
// Data flow:
//
//	Store -> Resolver -> strs.New(tables...) -> *strs.Strings
//
// Provenance:
//
//	Meta.SnapshotID is mapped onto strs.Table.SnapshotID, which is then
//	observable through Strings.ResolveWithTrace and activity events.
//
// Deterministic keys:
//
//	Ref.Identifier() returns "<domain>/<locale>" with the locale normalised
//	to lower_snake_case ("en_us"). File and Redis stores derive their paths
//	and keys from it.
package catalog
