package popcount

import "math/bits"

// kernelWords and kernelLogAndWords are the active word-path kernels,
// selected by selectKernels below. They are populated by this file's
// init, which runs after the platform init in capability_{amd64,arm64,
// other}.go has populated activeISA.
var (
	kernelWords       func([]uint64) uint32
	kernelLogAndWords func([]uint64, []uint64) uint32
)

func init() {
	kernelWords, kernelLogAndWords = selectKernels()
}

// selectKernels picks the word-path kernel pair for the detected ISA.
// No assembly kernel has been written for any ISA yet (see the root
// DESIGN.md for why), so every branch below currently resolves to the
// generic kernel set; the switch on ActiveISA() exists so that adding
// a real AVX2/AVX512/NEON kernel later is a matter of filling in one
// case, not restructuring this call site.
func selectKernels() (func([]uint64) uint32, func([]uint64, []uint64) uint32) {
	switch ActiveISA() {
	case AVX512, AVX2, NEON, SVE2, Generic:
		return popcountWordsGeneric, popcountLogAndWordsGeneric
	default:
		return popcountWordsGeneric, popcountLogAndWordsGeneric
	}
}

// popcountWordsGeneric counts set bits across words using four
// independent accumulators to break the dependency chain a single
// running sum would create, then falls back to a scalar tail.
//
// Fixed widths that show up constantly in practice (64/128/256/512-byte
// signatures, i.e. 8/16/32/64 words) go through specializations built
// from unrolled 8-word blocks; everything else goes through a stepped reduction
// that peels 16, 8, 4, 2, then 1 words at a time.
func popcountWordsGeneric(words []uint64) uint32 {
	switch len(words) {
	case 8:
		return popcountWords8(words)
	case 16:
		return popcountWords16(words)
	case 32:
		return popcountWords32(words)
	case 64:
		return popcountWords64(words)
	default:
		return popcountWordsStepped(words)
	}
}

// popcountLogAndWordsGeneric popcounts the bitwise AND of a and b,
// word at a time, with the same four-accumulator structure.
func popcountLogAndWordsGeneric(a, b []uint64) uint32 {
	var c0, c1, c2, c3 uint64
	n := len(a)
	i := 0
	for ; i+4 <= n; i += 4 {
		c0 += uint64(bits.OnesCount64(a[i] & b[i]))
		c1 += uint64(bits.OnesCount64(a[i+1] & b[i+1]))
		c2 += uint64(bits.OnesCount64(a[i+2] & b[i+2]))
		c3 += uint64(bits.OnesCount64(a[i+3] & b[i+3]))
	}
	total := c0 + c1 + c2 + c3
	for ; i < n; i++ {
		total += uint64(bits.OnesCount64(a[i] & b[i]))
	}
	return uint32(total)
}

// popcountWordsStepped handles an arbitrary word count via a reduction
// that processes progressively smaller fixed-size blocks: 16 words at a
// time (itself 4-way unrolled) for the bulk, then 8, 4, 2, and finally 1
// word at a time for what remains.
func popcountWordsStepped(words []uint64) uint32 {
	var total uint64
	i, n := 0, len(words)

	for ; i+16 <= n; i += 16 {
		total += uint64(popcountBlock16(words[i : i+16]))
	}
	for ; i+8 <= n; i += 8 {
		total += uint64(popcountBlock8(words[i : i+8]))
	}
	for ; i+4 <= n; i += 4 {
		total += uint64(popcountBlock4(words[i : i+4]))
	}
	for ; i+2 <= n; i += 2 {
		total += uint64(bits.OnesCount64(words[i]) + bits.OnesCount64(words[i+1]))
	}
	for ; i < n; i++ {
		total += uint64(bits.OnesCount64(words[i]))
	}
	return uint32(total)
}

func popcountBlock16(w []uint64) uint32 {
	return popcountBlock8(w[0:8]) + popcountBlock8(w[8:16])
}

func popcountBlock8(w []uint64) uint32 {
	var c0, c1, c2, c3 uint64
	c0 += uint64(bits.OnesCount64(w[0]) + bits.OnesCount64(w[4]))
	c1 += uint64(bits.OnesCount64(w[1]) + bits.OnesCount64(w[5]))
	c2 += uint64(bits.OnesCount64(w[2]) + bits.OnesCount64(w[6]))
	c3 += uint64(bits.OnesCount64(w[3]) + bits.OnesCount64(w[7]))
	return uint32(c0 + c1 + c2 + c3)
}

func popcountBlock4(w []uint64) uint32 {
	return uint32(bits.OnesCount64(w[0]) + bits.OnesCount64(w[1]) +
		bits.OnesCount64(w[2]) + bits.OnesCount64(w[3]))
}

// popcountWords8 is the fully unrolled kernel for 64-byte signatures.
func popcountWords8(w []uint64) uint32 {
	var c0, c1, c2, c3 uint64
	c0 = uint64(bits.OnesCount64(w[0]) + bits.OnesCount64(w[4]))
	c1 = uint64(bits.OnesCount64(w[1]) + bits.OnesCount64(w[5]))
	c2 = uint64(bits.OnesCount64(w[2]) + bits.OnesCount64(w[6]))
	c3 = uint64(bits.OnesCount64(w[3]) + bits.OnesCount64(w[7]))
	return uint32(c0 + c1 + c2 + c3)
}

// popcountWords16 is the fully unrolled kernel for 128-byte signatures.
func popcountWords16(w []uint64) uint32 {
	return popcountBlock8(w[0:8]) + popcountBlock8(w[8:16])
}

// popcountWords32 is the kernel for 256-byte signatures: four unrolled
// 8-word blocks.
func popcountWords32(w []uint64) uint32 {
	var total uint32
	for i := 0; i < 32; i += 8 {
		total += popcountBlock8(w[i : i+8])
	}
	return total
}

// popcountWords64 is the kernel for 512-byte signatures: eight unrolled
// 8-word blocks.
func popcountWords64(w []uint64) uint32 {
	var total uint32
	for i := 0; i < 64; i += 8 {
		total += popcountBlock8(w[i : i+8])
	}
	return total
}

// popcountBytes is the byte-wise fallback path used when the buffer
// length is not a multiple of 8.
func popcountBytes(buf []byte) uint32 {
	var total uint32
	for _, b := range buf {
		total += uint32(bits.OnesCount8(b))
	}
	return total
}

func popcountLogAndBytes(a, b []byte) uint32 {
	var total uint32
	n := len(a)
	for i := 0; i < n; i++ {
		total += uint32(bits.OnesCount8(a[i] & b[i]))
	}
	return total
}
