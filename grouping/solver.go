package grouping

import "iter"

// Solver incrementally partitions records into groups from a stream of
// candidate edges. It is not safe for concurrent use from multiple
// goroutines without external synchronization: the solver holds
// exclusive ownership of its record→group map, edge-count matrix, and
// group objects for its entire lifetime.
type Solver struct {
	mergeThreshold float64
	deduplicated   bool

	recordToGroup map[Record]*Group
	groupsByID    map[uint64]*Group
	edges         *edgeCounts
	nextGroupID   uint64
	mergeEvents   uint64

	lastMergeAbsorbedSize int
	lastMergeSurvivorSize int
}

// MergeEvents returns the number of group merges performed so far.
// Hosts can diff this before/after an AddEdge call to detect whether
// that specific edge triggered a merge, without paying for a full
// Groups() snapshot just to find out.
func (s *Solver) MergeEvents() uint64 { return s.mergeEvents }

// LastMergeSizes returns the absorbed and survivor group sizes from the
// most recent merge, for hosts that want to log or record them without
// paying for a full Groups() snapshot. Meaningless before any merge has
// happened; pair with MergeEvents to know whether one just occurred.
func (s *Solver) LastMergeSizes() (absorbedSize, survivorSize int) {
	return s.lastMergeAbsorbedSize, s.lastMergeSurvivorSize
}

// NewSolver creates a Solver. mergeThreshold must be within (0, 1];
// deduplicated, if true, forbids a group from ever containing two
// records from the same dataset.
func NewSolver(mergeThreshold float64, deduplicated bool, opts ...Option) (*Solver, error) {
	if mergeThreshold <= 0 || mergeThreshold > 1 {
		return nil, ErrInvalidMergeThreshold
	}
	o := applyOptions(opts)

	groupCap := 0
	if o.initialCapacityHint > 0 {
		groupCap = o.initialCapacityHint
	}
	return &Solver{
		mergeThreshold: mergeThreshold,
		deduplicated:   deduplicated,
		recordToGroup:  make(map[Record]*Group, groupCap),
		groupsByID:     make(map[uint64]*Group, groupCap),
		edges:          newEdgeCounts(),
	}, nil
}

// AddEdge processes one candidate edge, per spec: r0 and r1 must be
// distinct records.
func (s *Solver) AddEdge(r0, r1 Record) error {
	return s.addWeightedEdge(r0, r1, 1)
}

// AddWeightedEdge processes one candidate edge whose contribution to
// the completion-ratio count is weight instead of the implicit 1 used
// by AddEdge. AddEdge is equivalent to AddWeightedEdge with weight 1;
// this is a strict generalization for callers whose candidate
// generation emits graded confidence rather than a boolean edge.
func (s *Solver) AddWeightedEdge(r0, r1 Record, weight float64) error {
	return s.addWeightedEdge(r0, r1, weight)
}

// AddEdges processes a batch of edges with AddEdge's semantics applied
// in order.
func (s *Solver) AddEdges(edges []Edge) error {
	for _, e := range edges {
		if err := s.AddEdge(e.R0, e.R1); err != nil {
			return err
		}
	}
	return nil
}

// AddEdgeSeq processes edges from an iterator with AddEdge's semantics,
// for hosts that stream edges rather than materialize them all at once.
func (s *Solver) AddEdgeSeq(edges iter.Seq[Edge]) error {
	for e := range edges {
		if err := s.AddEdge(e.R0, e.R1); err != nil {
			return err
		}
	}
	return nil
}

func (s *Solver) addWeightedEdge(r0, r1 Record, weight float64) error {
	if r0 == r1 {
		return ErrSelfEdge
	}

	g0, has0 := s.recordToGroup[r0]
	g1, has1 := s.recordToGroup[r1]

	switch {
	case !has0 && !has1:
		s.handleNeitherGrouped(r0, r1)
	case has0 != has1:
		member, lone := r0, r1
		g := g0
		if has1 {
			member, lone = r1, r0
			g = g1
		}
		_ = member
		s.handleOneGrouped(g, lone, weight)
	default:
		s.handleBothGrouped(g0, g1, weight)
	}
	return nil
}

func (s *Solver) handleNeitherGrouped(r0, r1 Record) {
	if s.deduplicated && r0.Dataset == r1.Dataset {
		return
	}
	g := s.newGroup(r0, r1)
	s.recordToGroup[r0] = g
	s.recordToGroup[r1] = g
}

func (s *Solver) handleOneGrouped(g *Group, lone Record, weight float64) {
	dedupOK := !s.deduplicated || !g.sharesDatasetWith(lone.Dataset)
	if dedupOK && weight >= s.mergeThreshold*float64(g.Len()) {
		g.append(lone)
		s.recordToGroup[lone] = g
		return
	}

	singleton := s.newGroup(lone)
	s.recordToGroup[lone] = singleton
	s.edges.increment(g.id, singleton.id, weight)
}

func (s *Solver) handleBothGrouped(g0, g1 *Group, weight float64) {
	if g0.id == g1.id {
		return
	}
	count := s.edges.increment(g0.id, g1.id, weight)

	threshold := s.mergeThreshold * float64(g0.Len()) * float64(g1.Len())
	if count < threshold {
		return
	}
	if s.deduplicated && g0.sharesDataset(g1) {
		return
	}
	s.merge(g0, g1)
}

// merge absorbs the smaller of g0, g1 into the larger, per the merge
// procedure in §4.3: migrate records, migrate edge counts, drop the
// direct absorber-absorbee entry, free the absorbee.
func (s *Solver) merge(g0, g1 *Group) {
	absorber, absorbee := g0, g1
	if absorbee.Len() > absorber.Len() || (absorbee.Len() == absorber.Len() && absorbee.id < absorber.id) {
		absorber, absorbee = absorbee, absorber
	}

	absorbedSize := absorbee.Len()

	for _, r := range absorbee.Records() {
		s.recordToGroup[r] = absorber
	}
	absorber.absorb(absorbee)

	s.edges.remove(absorber.id, absorbee.id)
	s.edges.migrate(absorber.id, absorbee.id)

	delete(s.groupsByID, absorbee.id)
	s.mergeEvents++
	s.lastMergeAbsorbedSize = absorbedSize
	s.lastMergeSurvivorSize = absorber.Len()
}

func (s *Solver) newGroup(records ...Record) *Group {
	s.nextGroupID++
	g := newGroup(s.nextGroupID, records...)
	s.groupsByID[g.id] = g
	return g
}

// Groups returns the set of groups with at least 2 records at the
// current point in the stream, each as a slice of its member records
// in insertion order. The returned groups are snapshots: later calls to
// AddEdge do not retroactively mutate a previously returned slice.
func (s *Solver) Groups() [][]Record {
	seen := make(map[uint64]bool, len(s.groupsByID))
	var out [][]Record
	for _, g := range s.recordToGroup {
		if seen[g.id] {
			continue
		}
		seen[g.id] = true
		if g.Len() < 2 {
			continue
		}
		out = append(out, append([]Record(nil), g.Records()...))
	}
	return out
}
