package popcount

import (
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Array returns the number of set bits in buf. When len(buf) is a
// positive multiple of 8, the word-path kernel is used (via the
// alignment adapter if buf is not 8-byte aligned); otherwise the
// byte-wise fallback is used.
func Array(buf []byte) uint32 {
	if len(buf) == 0 {
		return 0
	}
	if len(buf)%8 != 0 {
		return popcountBytes(buf)
	}
	words, release := alignedWords(buf)
	defer release()
	return kernelWords(words)
}

// LogAnd returns the number of set bits in the bitwise AND of a and b.
// a and b must have equal length; callers within this module always
// satisfy this via prior validation (see similarity.DiceCoefficient).
func LogAnd(a, b []byte) uint32 {
	if len(a) == 0 {
		return 0
	}
	if len(a)%8 != 0 {
		return popcountLogAndBytes(a, b)
	}
	aw, releaseA := alignedWords(a)
	defer releaseA()
	bw, releaseB := alignedWords(b)
	defer releaseB()
	return kernelLogAndWords(aw, bw)
}

// Many fills dst[i] with the popcount of arrays[i] for every i and
// returns the wall-clock time spent. Many parallelizes across a
// GOMAXPROCS-bounded worker pool when the batch is large enough to
// amortize goroutine overhead; the result written to dst does not
// depend on how the work was scheduled, since each slot is independent.
func Many(dst []uint32, arrays [][]byte) time.Duration {
	start := time.Now()

	const parallelThreshold = 256
	if len(arrays) < parallelThreshold {
		for i, buf := range arrays {
			dst[i] = Array(buf)
		}
		return time.Since(start)
	}

	var g errgroup.Group
	workers := runtime.GOMAXPROCS(0)
	if workers > len(arrays) {
		workers = len(arrays)
	}
	chunk := (len(arrays) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		if lo >= len(arrays) {
			break
		}
		hi := min(lo+chunk, len(arrays))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				dst[i] = Array(arrays[i])
			}
			return nil
		})
	}
	_ = g.Wait()

	return time.Since(start)
}
