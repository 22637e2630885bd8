package similarity

import "github.com/hupe1980/linkcore/internal/popcount"

// DiceCoefficient computes the Sørensen-Dice similarity of two equal-
// length signatures: 2·|A∩B| / (|A|+|B|), where A and B are the sets of
// set bit positions in a and b. The Dice coefficient of two all-zero
// signatures is defined as 0, not 1 or undefined.
func DiceCoefficient(a, b []byte) (float64, error) {
	if len(a) != len(b) {
		return 0, &ErrLengthMismatch{Expected: len(a), Actual: len(b)}
	}
	return diceFromCounts(popcount.Array(a), popcount.Array(b), popcount.LogAnd(a, b)), nil
}

// diceFromCounts computes 2·and / (u+v), returning 0 when u+v is 0.
func diceFromCounts(u, v, and uint32) float64 {
	denom := u + v
	if denom == 0 {
		return 0
	}
	return 2 * float64(and) / float64(denom)
}
