package similarity

import (
	"context"

	"github.com/hupe1980/linkcore/internal/popcount"
	"github.com/hupe1980/linkcore/internal/queue"
)

// Match is one kept result of a top-k query: the candidate's position
// in the input batch and its Dice score against the query.
type Match struct {
	Index int
	Score float64
}

// Matcher runs bounded top-k Dice matching of one signature against
// many. It holds a reusable internal/queue.BoundedTopK across calls so
// that a series of Match calls on the same Matcher does not reallocate
// the heap's backing storage every time, plus construction-time options
// (such as byte-fallback behavior) that do not need to be threaded
// through every call. A Matcher is not safe for concurrent use from
// multiple goroutines; construct one per goroutine, or guard it with
// external synchronization.
type Matcher struct {
	byteFallback     bool
	heapCapacityHint int
	heap             *queue.BoundedTopK
}

// NewMatcher creates a Matcher with the given options applied.
func NewMatcher(opts ...Option) *Matcher {
	o := applyOptions(opts)
	return &Matcher{byteFallback: o.byteFallback, heapCapacityHint: o.heapCapacityHint}
}

// Match computes the top-k Dice matches of one against many candidates
// at or above threshold.
//
// countsMany, if non-nil, must hold a precomputed popcount for every
// candidate in many and have the same length as many; passing nil
// causes Match to compute them internally. k must be positive;
// threshold must be within [0, 1].
//
// Results are sorted best first (highest score at index 0); among equal
// scores the higher index comes first, matching the heap's eviction
// rule that the lowest index among equal scores counts as worst and is
// evicted first.
//
// Match returns ErrInvalidKeySize if len(one) is not a positive
// multiple of 8 and the Matcher was not constructed with
// WithByteFallback(true).
func (m *Matcher) Match(ctx context.Context, one []byte, many [][]byte, countsMany []uint32, k int, threshold float64) ([]Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if threshold < 0 || threshold > 1 {
		return nil, ErrThresholdOutOfRange
	}
	if (len(one) == 0 || len(one)%8 != 0) && !m.byteFallback {
		return nil, ErrInvalidKeySize
	}
	for _, c := range many {
		if len(c) != len(one) {
			return nil, &ErrLengthMismatch{Expected: len(one), Actual: len(c)}
		}
	}

	uPopc := popcount.Array(one)

	if uPopc == 0 {
		if threshold > 0 {
			return nil, nil
		}
		n := min(k, len(many))
		out := make([]Match, n)
		for i := 0; i < n; i++ {
			out[i] = Match{Index: i, Score: 0}
		}
		return out, nil
	}

	counts := countsMany
	if counts == nil {
		counts = make([]uint32, len(many))
		popcount.Many(counts, many)
	}

	deltaMax := maxPopcountDelta(uPopc, threshold, len(one))

	if m.heap == nil {
		backing := k
		if m.heapCapacityHint > backing {
			backing = m.heapCapacityHint
		}
		m.heap = queue.NewBoundedTopK(backing)
	}
	m.heap.Reset(k)
	heap := m.heap
	dynThreshold := threshold

	for j, candidate := range many {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		vj := counts[j]
		if absDiffU32(uPopc, vj) > deltaMax {
			continue
		}

		and := popcount.LogAnd(one, candidate)
		score := diceFromCounts(uPopc, vj, and)
		if score < dynThreshold {
			continue
		}

		if evicted, didEvict := heap.Offer(queue.Item{Index: j, Score: score}); didEvict {
			dynThreshold = max(dynThreshold, evicted.Score)
		}
	}

	items := heap.DrainBestFirst()
	out := make([]Match, len(items))
	for i, it := range items {
		out[i] = Match{Index: it.Index, Score: it.Score}
	}
	return out, nil
}

// MatchBest returns the single best match of one against many at
// threshold 0, or ok=false if many is empty.
func MatchBest(one []byte, many [][]byte) (match Match, ok bool, err error) {
	m := NewMatcher()
	results, err := m.Match(context.Background(), one, many, nil, 1, 0)
	if err != nil {
		return Match{}, false, err
	}
	if len(results) == 0 {
		return Match{}, false, nil
	}
	return results[0], true, nil
}

// maxPopcountDelta computes the admissibility bound delta_max such
// that any candidate popcount v with |u-v| > delta_max cannot reach
// threshold, derived from Dice ≤ 2·min(u,v)/(u+v).
func maxPopcountDelta(uPopc uint32, threshold float64, keyBytes int) uint32 {
	if threshold <= 0 {
		return uint32(keyBytes * 8)
	}
	return uint32(2 * float64(uPopc) * (1/threshold - 1))
}

func absDiffU32(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
