package strs

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

// Array segment selectors.
const (
	SelectRandom       = "?"
	SelectDistributed  = "!"
	BoundedIndexPrefix = "b"
)

// RandomSource picks a uniformly distributed int in [0, n). n is always > 0.
type RandomSource interface {
	IntN(n int) int
}

// RandomSourceFunc adapts a function to RandomSource.
type RandomSourceFunc func(n int) int

// IntN implements RandomSource.
func (f RandomSourceFunc) IntN(n int) int {
	return f(n)
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int { return rand.IntN(n) }

// selectionState holds, per composite key, the indices a "!" selector has not
// returned yet.
type selectionState struct {
	remaining map[string][]int
}

func newSelectionState() *selectionState {
	return &selectionState{remaining: map[string][]int{}}
}

// draw removes and returns one index from the pool for key, refilling the pool
// with [0, length) when it is empty.
func (s *selectionState) draw(key string, length int, rnd RandomSource) int {
	pool := s.remaining[key]
	if len(pool) == 0 {
		pool = make([]int, length)
		for i := range pool {
			pool[i] = i
		}
	}
	pick := rnd.IntN(len(pool))
	index := pool[pick]
	pool = append(pool[:pick], pool[pick+1:]...)
	s.remaining[key] = pool
	return index
}

func (s *selectionState) reset() {
	s.remaining = map[string][]int{}
}

// selectElement applies one path segment to a sequence node. parentKey is the
// concatenation of the segments consumed before this one and identifies the
// pool used by the "!" selector.
func (r *resolver) selectElement(seq Value, segment, parentKey string, consume bool) Value {
	length := seq.Len()
	switch {
	case segment == SelectRandom:
		if length == 0 {
			return Value{}
		}
		return seq.Index(r.random.IntN(length))
	case segment == SelectDistributed:
		if length == 0 {
			return Value{}
		}
		if !consume {
			return seq.Index(r.random.IntN(length))
		}
		// A stale index from an array that shrank resolves as not found.
		return seq.Index(r.selection.draw(parentKey, length, r.random))
	case strings.HasPrefix(segment, BoundedIndexPrefix):
		if length == 0 {
			return Value{}
		}
		index, err := strconv.Atoi(segment[len(BoundedIndexPrefix):])
		if err != nil {
			return Value{}
		}
		return seq.Index(clamp(index, 0, length-1))
	default:
		// Only canonical decimal indices address elements: "01" and "+1" miss.
		index, err := strconv.Atoi(segment)
		if err != nil || strconv.Itoa(index) != segment {
			return Value{}
		}
		return seq.Index(index)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
