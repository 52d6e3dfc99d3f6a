package lotto

import (
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Generator draws sets from a non-cryptographic source. It is not safe for
// concurrent use.
type Generator struct {
	r *rand.Rand
}

// NewGenerator returns a generator reading from src, or from a time-seeded
// source when src is nil.
func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Generator{r: rand.New(src)}
}

// GenerateSet draws until 7 distinct numbers in 1~45 are picked. The lowest
// 6 become the main numbers and the highest one the bonus.
func (g *Generator) GenerateSet() Set {
	picked := make(map[int]struct{}, MainCount+1)
	for len(picked) < MainCount+1 {
		picked[g.r.Intn(MaxNumber-MinNumber+1)+MinNumber] = struct{}{}
	}
	all := make([]int, 0, len(picked))
	for n := range picked {
		all = append(all, n)
	}
	sort.Ints(all)
	return Set{
		Main:  all[:MainCount],
		Bonus: all[MainCount],
	}
}

// GenerateBatch returns n independent sets, n clamped to 1~10.
func (g *Generator) GenerateBatch(n int) []Set {
	n = ClampCount(n)
	sets := make([]Set, n)
	for i := range sets {
		sets[i] = g.GenerateSet()
	}
	return sets
}

// ClampCount limits a requested set count to 1~MaxSetCount.
func ClampCount(n int) int {
	return min(MaxSetCount, max(1, n))
}

// ParseCount reads a set count typed by a user. Text that is not a number
// yields DefaultSetCount; fractions are truncated before clamping.
func ParseCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultSetCount
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return DefaultSetCount
	}
	f = math.Trunc(f)
	switch {
	case f > MaxSetCount:
		return MaxSetCount
	case f < 1:
		return 1
	}
	return int(f)
}
