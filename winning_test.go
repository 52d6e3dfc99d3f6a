package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suapapa/lotto645_recommender/lotto"
)

const winningCSV = `회차,번호1,번호2,번호3,번호4,번호5,번호6,보너스,1등 당첨금,1등 당첨수,2등 당첨금,2등 당첨수
2,9,13,21,25,32,42,2,"2,002,006,800",1,"94,866,800",2
1,10,23,29,33,37,40,16,"0",0,"143,934,100",1
3,11,16,19,21,27,31,30,"2,000,000,000",1,"0",0
`

func TestReadWinningHistory(t *testing.T) {
	wh, err := readWinningHistory(strings.NewReader(winningCSV))
	require.NoError(t, err)
	require.Len(t, wh, 3)

	assert.Equal(t, 1, wh[0].IssueNo, "sorted by issue")
	assert.Equal(t, 3, wh[2].IssueNo)

	w := wh[1]
	assert.Equal(t, []int{9, 13, 21, 25, 32, 42}, w.Numbers)
	assert.Equal(t, 2, w.Bonus)
	assert.Equal(t, 2002006800, w.FirstPrize)
	assert.Equal(t, 1, w.FirstCount)
	assert.Equal(t, 94866800, w.SecondPrize)
	assert.Equal(t, 2, w.SecondCount)

	s, err := w.Set()
	require.NoError(t, err)
	assert.Equal(t, lotto.Set{Main: []int{9, 13, 21, 25, 32, 42}, Bonus: 2}, s)

	assert.Equal(t, WinningHistory{wh[1], wh[2]}, wh.Recent(2))
	assert.Equal(t, wh, wh.Recent(0))
	assert.Equal(t, wh, wh.Recent(10))
}

func TestReadWinningHistoryErrors(t *testing.T) {
	_, err := readWinningHistory(strings.NewReader("h\nx,1,2,3,4,5,6,7,8,9,10,11\n"))
	assert.ErrorContains(t, err, "failed to parse issue number")

	// Short rows are skipped.
	wh, err := readWinningHistory(strings.NewReader("h\n1,2,3\n"))
	require.NoError(t, err)
	assert.Empty(t, wh)

	wh, err = readWinningHistory(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, wh)
}

func TestLoadWinningHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lotto_history.csv")
	require.NoError(t, os.WriteFile(path, []byte(winningCSV), 0o644))

	wh, err := loadWinningHistory(path)
	require.NoError(t, err)
	assert.Len(t, wh, 3)

	_, err = loadWinningHistory(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorContains(t, err, "failed to open file")
}
