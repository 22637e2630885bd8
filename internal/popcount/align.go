package popcount

import (
	"sync"
	"unsafe"
)

// alignedScratchPool holds reusable 8-byte-aligned byte slices for the
// case where a caller's buffer is not word-aligned. Pooling avoids an
// allocation on every misaligned call.
var alignedScratchPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, 512)
		return &buf
	},
}

// wordsView exposes a byte buffer as a []uint64 for the word-path
// kernels, copying into aligned scratch first if necessary. release
// must be called exactly once when the caller is done with words.
type wordsView struct {
	words   []uint64
	scratch *[]byte
}

// alignedWords returns a word-sized view of buf, which must have a
// length that is a multiple of 8. If buf's backing array is already
// 8-byte aligned, the view aliases buf directly (zero copy). Otherwise
// an aligned scratch buffer is borrowed from a pool, buf is copied into
// it, and the view aliases the scratch copy. release returns any
// borrowed scratch to the pool and must be called when done.
func alignedWords(buf []byte) (words []uint64, release func()) {
	if len(buf) == 0 {
		return nil, func() {}
	}
	if uintptr(unsafe.Pointer(&buf[0]))%8 == 0 {
		return unsafe.Slice((*uint64)(unsafe.Pointer(&buf[0])), len(buf)/8), func() {}
	}

	scratchPtr := alignedScratchPool.Get().(*[]byte)
	scratch := (*scratchPtr)[:0]
	if cap(scratch) < len(buf) {
		scratch = make([]byte, len(buf))
	} else {
		scratch = scratch[:len(buf)]
	}
	copy(scratch, buf)
	*scratchPtr = scratch

	release = func() {
		alignedScratchPool.Put(scratchPtr)
	}
	return unsafe.Slice((*uint64)(unsafe.Pointer(&scratch[0])), len(scratch)/8), release
}

// isAligned reports whether buf's backing array starts on an 8-byte
// boundary. Exposed for tests and for callers deciding whether to skip
// the adapter entirely.
func isAligned(buf []byte) bool {
	if len(buf) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&buf[0]))%8 == 0
}
