package strs

import "github.com/sahilm/fuzzy"

// Suggest ranks the leaf paths of every table by fuzzy similarity to key and
// returns at most limit of them, best first. limit <= 0 returns every match.
func (s *Strings) Suggest(key string, limit int) []string {
	if key == "" {
		return nil
	}
	matches := fuzzy.Find(key, s.Paths())
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, match := range matches {
		out[i] = match.Str
	}
	return out
}
