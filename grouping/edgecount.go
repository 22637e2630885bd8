package grouping

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// edgeCounts is the symmetric sparse group-pair edge-count matrix
// M[a][b] = M[b][a] from the solver's invariants EC1-EC3. Counts are
// stored in a single flat map keyed by a canonical (order-independent)
// hash of the two group ids, which keeps the hot increment/lookup path
// to one map access instead of two nested lookups and makes EC1
// (symmetry) true by construction rather than by bookkeeping. A
// separate adjacency index tracks, for each group id, which other
// group ids it currently has a nonzero count with — the flat map alone
// cannot be enumerated by row, and row enumeration is required by the
// merge procedure (EC3).
type edgeCounts struct {
	counts    map[uint64]float64
	neighbors map[uint64]map[uint64]struct{}
}

func newEdgeCounts() *edgeCounts {
	return &edgeCounts{
		counts:    make(map[uint64]float64),
		neighbors: make(map[uint64]map[uint64]struct{}),
	}
}

func pairKey(a, b uint64) uint64 {
	if a > b {
		a, b = b, a
	}
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], a)
	binary.LittleEndian.PutUint64(buf[8:16], b)
	return xxhash.Sum64(buf[:])
}

func (e *edgeCounts) addNeighbor(a, b uint64) {
	set, ok := e.neighbors[a]
	if !ok {
		set = make(map[uint64]struct{})
		e.neighbors[a] = set
	}
	set[b] = struct{}{}
}

func (e *edgeCounts) removeNeighbor(a, b uint64) {
	set, ok := e.neighbors[a]
	if !ok {
		return
	}
	delete(set, b)
	if len(set) == 0 {
		delete(e.neighbors, a)
	}
}

// get returns the current count between groups a and b.
func (e *edgeCounts) get(a, b uint64) float64 {
	return e.counts[pairKey(a, b)]
}

// increment adds weight to the count between a and b and returns the
// new total.
func (e *edgeCounts) increment(a, b uint64, weight float64) float64 {
	key := pairKey(a, b)
	total := e.counts[key] + weight
	e.counts[key] = total
	e.addNeighbor(a, b)
	e.addNeighbor(b, a)
	return total
}

// remove deletes the a-b entry entirely (used when a and b merge, per
// EC3's instruction to drop M[absorber][absorbee]).
func (e *edgeCounts) remove(a, b uint64) {
	delete(e.counts, pairKey(a, b))
	e.removeNeighbor(a, b)
	e.removeNeighbor(b, a)
}

// neighborsOf returns the set of group ids that currently have a
// nonzero edge count with id. The returned map must not be mutated.
func (e *edgeCounts) neighborsOf(id uint64) map[uint64]struct{} {
	return e.neighbors[id]
}

// migrate moves every (third, count) pair in absorbee's row into
// absorber's row, summing with any count absorber already has for
// third, then deletes absorbee's row entirely. The direct
// absorber-absorbee entry must already have been removed by the caller.
func (e *edgeCounts) migrate(absorberID, absorbeeID uint64) {
	for third := range e.neighborsOf(absorbeeID) {
		if third == absorberID {
			continue
		}
		moved := e.get(absorbeeID, third)
		e.remove(absorbeeID, third)

		key := pairKey(absorberID, third)
		e.counts[key] += moved
		e.addNeighbor(absorberID, third)
		e.addNeighbor(third, absorberID)
	}
	delete(e.neighbors, absorbeeID)
}
