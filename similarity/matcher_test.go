package similarity

import (
	"context"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiceCoefficientBounds(t *testing.T) {
	a := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	zero := []byte{0, 0, 0, 0, 0, 0, 0, 0}

	d, err := DiceCoefficient(a, a)
	require.NoError(t, err)
	assert.Equal(t, 1.0, d)

	d, err = DiceCoefficient(a, zero)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)

	d, err = DiceCoefficient(zero, zero)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d, "Dice of two empty sets is defined as 0")
}

func TestDiceCoefficientSymmetry(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	a := make([]byte, 64)
	b := make([]byte, 64)
	r.Read(a)
	r.Read(b)

	dab, err := DiceCoefficient(a, b)
	require.NoError(t, err)
	dba, err := DiceCoefficient(b, a)
	require.NoError(t, err)
	assert.Equal(t, dab, dba)
	assert.GreaterOrEqual(t, dab, 0.0)
	assert.LessOrEqual(t, dab, 1.0)
}

func TestDiceCoefficientLengthMismatch(t *testing.T) {
	_, err := DiceCoefficient([]byte{0xFF}, []byte{0xFF, 0x00})
	var lm *ErrLengthMismatch
	require.ErrorAs(t, err, &lm)
}

// Scenario 1 from the testable-properties catalog.
func TestMatchScenarioAllCandidatesAboveZero(t *testing.T) {
	one := []byte{0xFF, 0, 0, 0, 0, 0, 0, 0}
	many := [][]byte{
		{0xFF, 0, 0, 0, 0, 0, 0, 0},
		{0x0F, 0, 0, 0, 0, 0, 0, 0},
		{0x00, 0, 0, 0, 0, 0, 0, 0},
	}

	m := NewMatcher()
	results, err := m.Match(context.Background(), one, many, nil, 3, 0)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, 0, results[0].Index)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	assert.Equal(t, 1, results[1].Index)
	assert.InDelta(t, 8.0/12.0, results[1].Score, 1e-9)
	assert.Equal(t, 2, results[2].Index)
	assert.InDelta(t, 0.0, results[2].Score, 1e-9)
}

// Scenario 2: empty query, permissive threshold.
func TestMatchScenarioEmptyQueryPermissive(t *testing.T) {
	one := make([]byte, 8)
	many := [][]byte{{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}}

	m := NewMatcher()
	results, err := m.Match(context.Background(), one, many, nil, 1, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].Index)
	assert.Equal(t, 0.0, results[0].Score)
}

// Scenario 3: empty query, strict threshold.
func TestMatchScenarioEmptyQueryStrict(t *testing.T) {
	one := make([]byte, 8)
	many := [][]byte{{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}}

	m := NewMatcher()
	results, err := m.Match(context.Background(), one, many, nil, 1, 0.1)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMatchOrderingAndDeterminism(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	one := make([]byte, 64)
	r.Read(one)
	many := make([][]byte, 200)
	for i := range many {
		many[i] = make([]byte, 64)
		r.Read(many[i])
	}

	m := NewMatcher()
	results, err := m.Match(context.Background(), one, many, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, results, 10)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}

	// Rerunning against the same inputs must be deterministic.
	results2, err := m.Match(context.Background(), one, many, nil, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, results, results2)
}

func TestMatchAgainstNaive(t *testing.T) {
	r := rand.New(rand.NewSource(21))
	one := make([]byte, 64)
	r.Read(one)
	many := make([][]byte, 120)
	for i := range many {
		many[i] = make([]byte, 64)
		r.Read(many[i])
	}

	const k = 8
	const threshold = 0.3

	type naive struct {
		idx   int
		score float64
	}
	var all []naive
	for i, c := range many {
		d, err := DiceCoefficient(one, c)
		require.NoError(t, err)
		if d >= threshold {
			all = append(all, naive{i, d})
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score > all[j].score
		}
		return all[i].idx > all[j].idx
	})
	if len(all) > k {
		all = all[:k]
	}

	m := NewMatcher()
	results, err := m.Match(context.Background(), one, many, nil, k, threshold)
	require.NoError(t, err)
	require.Len(t, results, len(all))
	for i := range all {
		assert.Equal(t, all[i].idx, results[i].Index)
		assert.InDelta(t, all[i].score, results[i].Score, 1e-9)
	}
}

func TestMatchInvalidArguments(t *testing.T) {
	m := NewMatcher()
	ctx := context.Background()

	_, err := m.Match(ctx, []byte{0xFF}, nil, nil, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = m.Match(ctx, []byte{0xFF}, nil, nil, 1, 1.5)
	assert.ErrorIs(t, err, ErrThresholdOutOfRange)
}

func TestMatchRejectsNonWordSizeByDefault(t *testing.T) {
	m := NewMatcher()
	one := []byte{0xFF, 0x0F, 0x01} // 3 bytes, not a multiple of 8

	_, err := m.Match(context.Background(), one, nil, nil, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidKeySize)
}

func TestMatchByteFallbackEnabled(t *testing.T) {
	m := NewMatcher(WithByteFallback(true))
	one := []byte{0xFF, 0x0F, 0x01} // 3 bytes, not a multiple of 8
	many := [][]byte{{0xFF, 0x0F, 0x01}, {0x00, 0x00, 0x00}}

	results, err := m.Match(context.Background(), one, many, nil, 2, 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 0, results[0].Index)
	assert.Equal(t, 1.0, results[0].Score)
}

// The reusable heap must shrink its logical capacity correctly when a
// later call uses a smaller k than an earlier one on the same Matcher,
// even though WithHeapCapacityHint keeps its backing array sized for
// the larger k.
func TestMatchReusesHeapAcrossVaryingK(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	one := make([]byte, 64)
	r.Read(one)
	many := make([][]byte, 50)
	for i := range many {
		many[i] = make([]byte, 64)
		r.Read(many[i])
	}

	m := NewMatcher(WithHeapCapacityHint(20))

	big, err := m.Match(context.Background(), one, many, nil, 20, 0)
	require.NoError(t, err)
	require.Len(t, big, 20)

	small, err := m.Match(context.Background(), one, many, nil, 5, 0)
	require.NoError(t, err)
	require.Len(t, small, 5)
	assert.Equal(t, big[:5], small)
}

func TestMatchBest(t *testing.T) {
	one := []byte{0xFF, 0, 0, 0, 0, 0, 0, 0}
	many := [][]byte{
		{0x00, 0, 0, 0, 0, 0, 0, 0},
		{0xFF, 0, 0, 0, 0, 0, 0, 0},
	}

	match, ok, err := MatchBest(one, many)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, match.Index)
	assert.InDelta(t, 1.0, match.Score, 1e-9)
}
