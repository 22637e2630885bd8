// Package grouping implements the greedy multi-party record-linkage
// solver: given a stream of candidate edges between records drawn from
// possibly many datasets, it incrementally maintains disjoint groups of
// records believed to refer to the same entity, merging two groups only
// once their observed cross-edges are complete enough to clear a
// configurable threshold.
package grouping
