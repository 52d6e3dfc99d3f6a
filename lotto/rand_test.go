package lotto

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSet(t *testing.T) {
	g := NewGenerator(rand.NewSource(645))

	for i := 0; i < 2000; i++ {
		s := g.GenerateSet()
		require.NoError(t, s.Validate())
		require.Len(t, s.Main, MainCount)
		require.True(t, slices.IsSorted(s.Main))
		require.True(t, s.HasBonus())
		// The bonus is the largest of the 7 drawn numbers.
		require.Greater(t, s.Bonus, s.Main[MainCount-1])
		for _, n := range append(slices.Clone(s.Main), s.Bonus) {
			require.GreaterOrEqual(t, n, MinNumber)
			require.LessOrEqual(t, n, MaxNumber)
		}
	}
}

func TestGenerateSetIsDeterministicPerSeed(t *testing.T) {
	a := NewGenerator(rand.NewSource(1)).GenerateBatch(3)
	b := NewGenerator(rand.NewSource(1)).GenerateBatch(3)
	require.Len(t, a, 3)
	for i := range a {
		assert.True(t, a[i].Equal(b[i]))
	}
}

func TestGenerateBatch(t *testing.T) {
	g := NewGenerator(nil)

	tests := []struct {
		n    int
		want int
	}{
		{n: 5, want: 5},
		{n: 1, want: 1},
		{n: 10, want: 10},
		{n: 0, want: 1},
		{n: -3, want: 1},
		{n: 11, want: 10},
		{n: 100, want: 10},
	}
	for _, tt := range tests {
		sets := g.GenerateBatch(tt.n)
		assert.Len(t, sets, tt.want, "n=%d", tt.n)
		for _, s := range sets {
			assert.NoError(t, s.Validate())
		}
	}
}

func TestParseCount(t *testing.T) {
	tests := map[string]int{
		"":      DefaultSetCount,
		"abc":   DefaultSetCount,
		"NaN":   DefaultSetCount,
		"Inf":   DefaultSetCount,
		"3":     3,
		" 7 ":   7,
		"2.9":   2,
		"0":     1,
		"-5":    1,
		"11":    MaxSetCount,
		"1e300": MaxSetCount,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseCount(in), "input %q", in)
	}
}
