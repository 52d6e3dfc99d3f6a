package lotto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketOf(t *testing.T) {
	tests := []struct {
		n     int
		class string
	}{
		{1, "b1"}, {10, "b1"},
		{11, "b2"}, {20, "b2"},
		{21, "b3"}, {30, "b3"},
		{31, "b4"}, {40, "b4"},
		{41, "b5"}, {45, "b5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.class, BucketOf(tt.n).Class(), "n=%d", tt.n)
	}
}

func TestSetString(t *testing.T) {
	s := Set{Main: []int{3, 7, 12, 19, 30, 41}, Bonus: 45}
	assert.Equal(t, "3, 7, 12, 19, 30, 41 + 보너스 45", s.String())

	s.Bonus = 0
	assert.Equal(t, "3, 7, 12, 19, 30, 41 + 보너스 -", s.String())
}

func TestExportText(t *testing.T) {
	sets := []Set{
		{Main: []int{1, 2, 3, 4, 5, 6}, Bonus: 7},
		{Main: []int{1, 2, 3}, Bonus: 7},
		{Main: []int{10, 20, 30, 40, 41, 45}},
	}
	want := "1세트: 1, 2, 3, 4, 5, 6 + 보너스 7\n" +
		"2세트: 10, 20, 30, 40, 41, 45 + 보너스 -"
	assert.Equal(t, want, ExportText(sets))
	assert.Equal(t, "", ExportText(nil))
}

func TestHistoryLines(t *testing.T) {
	assert.Equal(t, []string{NoHistoryText}, HistoryLines(nil))

	h := History{{
		At: "2026-10-19 14:03",
		Sets: []Set{
			{Main: []int{1, 2, 3, 4, 5, 6}, Bonus: 7},
			{Main: []int{8, 9, 10, 11, 12, 13}, Bonus: 14},
		},
	}}
	assert.Equal(t, []string{
		"2026-10-19 14:03 · 1세트: 1, 2, 3, 4, 5, 6 + 보너스 7 / 2세트: 8, 9, 10, 11, 12, 13 + 보너스 14",
	}, HistoryLines(h))
}
