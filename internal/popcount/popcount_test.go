package popcount

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func naivePopcount(buf []byte) uint32 {
	var total uint32
	for _, b := range buf {
		total += uint32(bits.OnesCount8(b))
	}
	return total
}

func TestArray(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{"empty", nil},
		{"single byte", []byte{0xFF}},
		{"8 bytes all set", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
		{"64 bytes (8 words)", bytesOfLen(64, 1)},
		{"128 bytes (16 words)", bytesOfLen(128, 2)},
		{"256 bytes (32 words)", bytesOfLen(256, 3)},
		{"512 bytes (64 words)", bytesOfLen(512, 4)},
		{"odd word count (24 words)", bytesOfLen(192, 5)},
		{"non-multiple-of-8 length", []byte{0xFF, 0x0F, 0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, naivePopcount(tt.buf), Array(tt.buf))
		})
	}
}

func TestArrayRandom(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, n := range []int{0, 1, 7, 8, 9, 63, 64, 65, 127, 128, 255, 256, 511, 512, 513, 1000} {
		buf := make([]byte, n)
		r.Read(buf)
		require.Equal(t, naivePopcount(buf), Array(buf), "length %d", n)
	}
}

func TestLogAnd(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for _, n := range []int{0, 8, 16, 24, 64, 128, 200} {
		a := make([]byte, n)
		b := make([]byte, n)
		r.Read(a)
		r.Read(b)

		want := uint32(0)
		for i := range a {
			want += uint32(bits.OnesCount8(a[i] & b[i]))
		}
		got := LogAnd(a, b)
		assert.Equal(t, want, got, "length %d", n)
		assert.LessOrEqual(t, got, min(Array(a), Array(b)))
	}
}

func TestMany(t *testing.T) {
	arrays := make([][]byte, 300)
	r := rand.New(rand.NewSource(3))
	for i := range arrays {
		arrays[i] = make([]byte, 64)
		r.Read(arrays[i])
	}

	dst := make([]uint32, len(arrays))
	elapsed := Many(dst, arrays)
	assert.GreaterOrEqual(t, elapsed, 0*elapsed)

	for i, buf := range arrays {
		assert.Equal(t, naivePopcount(buf), dst[i])
	}
}

func bytesOfLen(n int, seed int64) []byte {
	r := rand.New(rand.NewSource(seed))
	buf := make([]byte, n)
	r.Read(buf)
	return buf
}
