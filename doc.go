// Package linkcore provides the computational core for privacy-preserving
// record linkage: a popcount-based Sørensen-Dice similarity kernel with
// bounded top-k matching, and a greedy multi-party grouping solver.
//
// # Quick Start
//
// Matching a query signature against a batch of candidates:
//
//	m := similarity.NewMatcher()
//	matches, _ := m.Match(ctx, query, candidates, nil, 10, 0.5)
//	for _, r := range matches {
//	    fmt.Println(r.Index, r.Score)
//	}
//
// Grouping records across datasets from a stream of candidate edges:
//
//	s, _ := grouping.NewSolver(0.8, true)
//	s.AddEdge(grouping.Record{Dataset: 0, Index: 4}, grouping.Record{Dataset: 1, Index: 9})
//	groups := s.Groups()
//
// # Key Features
//
//   - Word-aligned popcount with byte-wise fallback for arbitrary signature widths
//   - Early-reject admissibility filter to skip candidates that cannot beat the current threshold
//   - Bounded min-heap top-k extraction with deterministic (score, index) tiebreaking
//   - Greedy incremental grouping with per-dataset deduplication and O(1) amortized merge checks
package linkcore
