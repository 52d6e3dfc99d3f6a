package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/suapapa/lotto645_recommender/lotto"
)

// Winning is one official draw result.
type Winning struct {
	IssueNo     int   `json:"issue_no" yaml:"issue_no"`
	Numbers     []int `json:"numbers" yaml:"numbers"`
	Bonus       int   `json:"bonus" yaml:"bonus"`
	FirstPrize  int   `json:"first_prize" yaml:"first_prize"`
	FirstCount  int   `json:"first_count" yaml:"first_count"`
	SecondPrize int   `json:"second_prize" yaml:"second_prize"`
	SecondCount int   `json:"second_count" yaml:"second_count"`
}

// Set returns the draw as a lotto set.
func (w *Winning) Set() (lotto.Set, error) {
	s := lotto.Set{Main: w.Numbers, Bonus: w.Bonus}
	if err := s.Validate(); err != nil {
		return lotto.Set{}, fmt.Errorf("issue %d: %w", w.IssueNo, err)
	}
	return s, nil
}

type WinningHistory []*Winning

func (wh WinningHistory) Len() int {
	return len(wh)
}
func (wh WinningHistory) Less(i, j int) bool {
	return wh[i].IssueNo < wh[j].IssueNo
}
func (wh WinningHistory) Swap(i, j int) {
	wh[i], wh[j] = wh[j], wh[i]
}

// Recent returns the last n draws, oldest first.
func (wh WinningHistory) Recent(n int) WinningHistory {
	if n <= 0 || n >= len(wh) {
		return wh
	}
	return wh[len(wh)-n:]
}

func loadWinningHistory(filePath string) (WinningHistory, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return readWinningHistory(f)
}

// readWinningHistory parses the draw CSV, skipping the header:
// 회차,번호1,번호2,번호3,번호4,번호5,번호6,보너스,1등 당첨금,1등 당첨수,2등 당첨금,2등 당첨수
func readWinningHistory(r io.Reader) (WinningHistory, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return WinningHistory{}, nil
	}

	winningHistory := make(WinningHistory, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 12 {
			continue
		}
		w, err := parseWinning(record)
		if err != nil {
			return nil, err
		}
		winningHistory = append(winningHistory, w)
	}

	sort.Sort(winningHistory)
	return winningHistory, nil
}

func parseWinning(record []string) (*Winning, error) {
	var (
		w   Winning
		err error
	)
	if w.IssueNo, err = atoi(record[0]); err != nil {
		return nil, fmt.Errorf("failed to parse issue number: %w", err)
	}
	for i := 1; i <= 6; i++ {
		num, err := atoi(record[i])
		if err != nil {
			return nil, fmt.Errorf("failed to parse number: %w", err)
		}
		w.Numbers = append(w.Numbers, num)
	}
	sort.Ints(w.Numbers)
	if w.Bonus, err = atoi(record[7]); err != nil {
		return nil, fmt.Errorf("failed to parse bonus: %w", err)
	}
	if w.FirstPrize, err = atoi(record[8]); err != nil {
		return nil, fmt.Errorf("failed to parse first prize: %w", err)
	}
	if w.FirstCount, err = atoi(record[9]); err != nil {
		return nil, fmt.Errorf("failed to parse first count: %w", err)
	}
	if w.SecondPrize, err = atoi(record[10]); err != nil {
		return nil, fmt.Errorf("failed to parse second prize: %w", err)
	}
	if w.SecondCount, err = atoi(record[11]); err != nil {
		return nil, fmt.Errorf("failed to parse second count: %w", err)
	}
	return &w, nil
}

// atoi accepts thousands separators, as in "2,345,678,900".
func atoi(s string) (int, error) {
	return strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
}
