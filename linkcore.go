package linkcore

import (
	"context"
	"time"

	"github.com/hupe1980/linkcore/grouping"
	"github.com/hupe1980/linkcore/similarity"
)

// Core is a thin coordinator that holds one Logger and MetricsCollector
// and uses them for matches run through Core.Match and for edges added
// through Core.AddEdge. Most callers can use
// the similarity and grouping packages directly; Core exists for callers
// that want one configured entry point across both subsystems.
type Core struct {
	matcher *similarity.Matcher
	logger  *Logger
	metrics MetricsCollector
}

// New creates a Core with the given options applied.
func New(opts ...Option) *Core {
	o := applyOptions(opts)
	return &Core{
		matcher: similarity.NewMatcher(),
		logger:  o.logger,
		metrics: o.metricsCollector,
	}
}

// Match runs top-k Dice similarity matching of one signature against
// many, logging and recording metrics through this Core's configured
// Logger and MetricsCollector. See similarity.Matcher.Match for full
// matching semantics.
func (c *Core) Match(ctx context.Context, one []byte, many [][]byte, countsMany []uint32, k int, threshold float64) ([]similarity.Match, error) {
	start := time.Now()
	matches, err := c.matcher.Match(ctx, one, many, countsMany, k, threshold)
	duration := time.Since(start)

	c.metrics.RecordMatch(k, len(matches), duration, err)
	c.logger.WithK(k).WithThreshold(threshold).LogMatch(ctx, k, len(many), len(matches), duration, err)

	if err != nil {
		return nil, translateError(err)
	}
	return matches, nil
}

// NewSolver creates a grouping.Solver, translating a construction error
// into the Core's error taxonomy. The returned solver holds no logger or
// metrics collector of its own; use Core.AddEdge instead of
// Solver.AddEdge directly to get logging and metrics on each edge.
func (c *Core) NewSolver(mergeThreshold float64, deduplicated bool) (*grouping.Solver, error) {
	s, err := grouping.NewSolver(mergeThreshold, deduplicated)
	if err != nil {
		return nil, translateError(err)
	}
	return s, nil
}

// AddEdge processes one candidate edge on s, logging and recording
// metrics through this Core's configured Logger and MetricsCollector.
func (c *Core) AddEdge(ctx context.Context, s *grouping.Solver, r0, r1 grouping.Record) error {
	before := s.MergeEvents()
	start := time.Now()
	err := s.AddEdge(r0, r1)
	duration := time.Since(start)
	merged := s.MergeEvents() > before

	c.metrics.RecordAddEdge(merged, duration, err)
	c.logger.LogAddEdge(ctx, merged, duration, err)
	if merged {
		absorbedSize, survivorSize := s.LastMergeSizes()
		c.logger.LogMerge(ctx, absorbedSize, survivorSize)
	}

	if err != nil {
		return translateError(err)
	}
	return nil
}
