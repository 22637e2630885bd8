// Package similarity implements the Sørensen-Dice similarity kernel:
// pairwise Dice coefficients over bit-vector signatures, and bounded
// top-k matching of one query signature against many candidates.
package similarity
