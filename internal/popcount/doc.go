// Package popcount computes bit-population counts over byte buffers,
// both standalone and of the bitwise AND of two buffers. It is the
// performance-critical primitive underneath the Dice similarity kernel
// in the similarity package.
//
// Buffers whose length is a multiple of 8 are processed word-at-a-time
// using four independent accumulators to avoid read-modify-write stalls
// on a single running sum. Buffers of arbitrary length fall back to a
// byte-wise path. CPU capabilities are detected once at package init
// (see capability.go) and resolved to an active ISA; kernel selection
// switches on that ISA through a function pointer pair set once at
// init (see kernels.go), so the package can grow assembly kernels for
// specific ISAs by adding a case, without changing its API. No such
// kernel has been written yet, so every ISA currently resolves to the
// same generic word-path implementation.
package popcount
