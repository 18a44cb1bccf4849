// Package query evaluates predicates over the flattened entries of a
// strs.Strings. The default engine is expr-lang/expr; CEL is available via
// NewCELEvaluator and JavaScript (goja) when built with the js_eval tag.
//
// Every predicate sees the same bindings:
//
//	key       full "/" path of the entry
//	value     the entry (string, float64, bool or nil)
//	kind      "string", "number", "bool" or "null"
//	table     name of the table that provides the entry
//	depth     number of path segments
//	now       evaluation time
//	args      caller supplied arguments
//	metadata  caller supplied metadata
package query
