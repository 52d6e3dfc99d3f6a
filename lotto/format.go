package lotto

import (
	"fmt"
	"strconv"
	"strings"
)

// NoHistoryText is shown in place of an empty history.
const NoHistoryText = "아직 기록이 없어요. '추천받기'를 눌러보세요."

// Bucket groups numbers by tens for ball colors.
type Bucket int

const (
	Bucket1to10 Bucket = iota + 1
	Bucket11to20
	Bucket21to30
	Bucket31to40
	Bucket41to45
)

// BucketOf returns the color bucket of n.
func BucketOf(n int) Bucket {
	switch {
	case n <= 10:
		return Bucket1to10
	case n <= 20:
		return Bucket11to20
	case n <= 30:
		return Bucket21to30
	case n <= 40:
		return Bucket31to40
	default:
		return Bucket41to45
	}
}

// Class is the style class name of the bucket, b1..b5.
func (b Bucket) Class() string {
	return "b" + strconv.Itoa(int(b))
}

// BonusText is the bonus number, or "-" when unknown.
func (s Set) BonusText() string {
	if !s.HasBonus() {
		return "-"
	}
	return strconv.Itoa(s.Bonus)
}

// String formats s as "3, 7, 12, 19, 30, 41 + 보너스 45".
func (s Set) String() string {
	nums := make([]string, len(s.Main))
	for i, n := range s.Main {
		nums[i] = strconv.Itoa(n)
	}
	return fmt.Sprintf("%s + 보너스 %s", strings.Join(nums, ", "), s.BonusText())
}

// SetLabel is the 1-based "N세트" chip text.
func SetLabel(i int) string {
	return fmt.Sprintf("%d세트", i+1)
}

// ExportText renders sets for the clipboard, one "N세트: ..." line each.
// Invalid sets are skipped.
func ExportText(sets []Set) string {
	lines := make([]string, 0, len(sets))
	for _, s := range sets {
		if s.Validate() != nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", SetLabel(len(lines)), s))
	}
	return strings.Join(lines, "\n")
}

// HistoryLine renders an entry as "at · 1세트: ... / 2세트: ...".
func HistoryLine(e Entry) string {
	parts := make([]string, 0, len(e.Sets))
	for _, s := range e.Sets {
		if s.Validate() != nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", SetLabel(len(parts)), s))
	}
	return fmt.Sprintf("%s · %s", e.At, strings.Join(parts, " / "))
}

// HistoryLines renders h one line per entry, or the placeholder when empty.
func HistoryLines(h History) []string {
	if len(h) == 0 {
		return []string{NoHistoryText}
	}
	lines := make([]string, len(h))
	for i, e := range h {
		lines[i] = HistoryLine(e)
	}
	return lines
}
