package similarity

type options struct {
	byteFallback     bool
	heapCapacityHint int
}

// Option configures Matcher construction.
type Option func(*options)

// WithByteFallback enables the byte-wise popcount path for signatures
// whose length is not a multiple of 8. Without this option, such
// signatures cause Match to return ErrInvalidKeySize, matching the
// word-path-only contract.
func WithByteFallback(enabled bool) Option {
	return func(o *options) {
		o.byteFallback = enabled
	}
}

// WithHeapCapacityHint pre-sizes the Matcher's reusable top-k heap's
// backing storage for the largest k this Matcher expects to be called
// with, so that a later Match call with a larger k than any seen so far
// does not force a reallocation mid-series. Ignored if hint <= 0; the
// heap always still enforces each call's own k as its logical capacity
// regardless of this hint.
func WithHeapCapacityHint(hint int) Option {
	return func(o *options) {
		o.heapCapacityHint = hint
	}
}

func applyOptions(optFns []Option) options {
	o := options{byteFallback: false}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
