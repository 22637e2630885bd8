package grouping

import "errors"

var (
	// ErrInvalidMergeThreshold is returned when mergeThreshold is
	// outside (0, 1].
	ErrInvalidMergeThreshold = errors.New("grouping: merge threshold must be within (0, 1]")

	// ErrSelfEdge is returned when an edge's two endpoints are the same
	// record; spec precondition r0 != r1 makes this undefined if
	// violated, and this module chooses to report it rather than be
	// undefined for host-reachable input.
	ErrSelfEdge = errors.New("grouping: edge endpoints must be distinct records")
)
