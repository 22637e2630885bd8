package grouping

type options struct {
	initialCapacityHint int
}

// Option configures Solver construction.
type Option func(*options)

// WithInitialCapacityHint pre-sizes the Solver's internal record→group
// and group-id maps for an expected number of distinct records, so that
// a host that knows its approximate record count upfront avoids the
// incremental map growth that would otherwise happen as AddEdge calls
// come in. Ignored if hint <= 0.
func WithInitialCapacityHint(hint int) Option {
	return func(o *options) {
		o.initialCapacityHint = hint
	}
}

func applyOptions(optFns []Option) options {
	var o options
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
