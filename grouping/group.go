package grouping

import "github.com/RoaringBitmap/roaring/v2"

// Group is a non-empty ordered sequence of records believed to refer to
// the same entity. Identity is by the group's id, not its contents:
// two groups holding identical records remain distinct until merged.
// Groups are never shrunk; records are never removed from one once
// added, only migrated wholesale during a merge.
type Group struct {
	id       uint64
	records  []Record
	datasets *roaring.Bitmap
}

func newGroup(id uint64, records ...Record) *Group {
	g := &Group{
		id:       id,
		records:  append([]Record(nil), records...),
		datasets: roaring.New(),
	}
	for _, r := range records {
		g.datasets.Add(r.Dataset)
	}
	return g
}

// Len returns the number of records currently in the group.
func (g *Group) Len() int { return len(g.records) }

// Records returns the group's records in the order they were added.
// The returned slice must not be mutated by the caller.
func (g *Group) Records() []Record { return g.records }

func (g *Group) append(r Record) {
	g.records = append(g.records, r)
	g.datasets.Add(r.Dataset)
}

// absorb appends other's records into g and merges its dataset bitmap.
// other is left in an unusable state; callers must drop all references
// to it after absorb returns.
func (g *Group) absorb(other *Group) {
	g.records = append(g.records, other.records...)
	g.datasets.Or(other.datasets)
}

// sharesDataset reports whether g and other have at least one dataset
// in common — the predicate behind the deduplication rule.
func (g *Group) sharesDataset(other *Group) bool {
	return g.datasets.Intersects(other.datasets)
}

// sharesDatasetWith reports whether g already contains a record from
// dataset d.
func (g *Group) sharesDatasetWith(d uint32) bool {
	return g.datasets.Contains(d)
}
