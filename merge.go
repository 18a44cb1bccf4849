package strs

// MergeValues composes values ordered from strongest to weakest. Mappings are
// merged key by key; any other strong value replaces the weaker one whole, so
// sequences are never concatenated.
func MergeValues(values ...Value) Value {
	var merged Value
	for i := len(values) - 1; i >= 0; i-- {
		merged = mergeValue(values[i], merged)
	}
	return merged
}

func mergeValue(strong, weak Value) Value {
	if !strong.IsValid() {
		return cloneValue(weak)
	}
	if strong.Kind() != KindMapping || weak.Kind() != KindMapping {
		return cloneValue(strong)
	}
	result := make(map[string]Value, len(strong.m)+len(weak.m))
	for key, item := range weak.m {
		result[key] = cloneValue(item)
	}
	for key, item := range strong.m {
		if existing, ok := result[key]; ok {
			result[key] = mergeValue(item, existing)
			continue
		}
		result[key] = cloneValue(item)
	}
	return Value{kind: KindMapping, m: result}
}

func cloneValue(v Value) Value {
	switch v.kind {
	case KindSequence:
		seq := make([]Value, len(v.seq))
		for i, item := range v.seq {
			seq[i] = cloneValue(item)
		}
		return Value{kind: KindSequence, seq: seq}
	case KindMapping:
		m := make(map[string]Value, len(v.m))
		for key, item := range v.m {
			m[key] = cloneValue(item)
		}
		return Value{kind: KindMapping, m: m}
	default:
		return v
	}
}

// Merged returns a single tree holding what the tables define together, with
// higher priority tables winning. Table roots that are sequences only take
// part when no mapping root is stronger.
func (s *Strings) Merged() Value {
	roots := make([]Value, len(s.resolver.tables))
	for i, table := range s.resolver.tables {
		roots[i] = table.Root
	}
	return MergeValues(roots...)
}
