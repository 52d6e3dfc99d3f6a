package lotto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"sort"
)

// Normalize parses a stored set in either of its two shapes:
//
//	{"main": [6 numbers], "bonus": n}   current format
//	[n1, n2, ...]                       old format, bonus optional
//
// A null bonus in the object shape is kept as unknown so that a
// normalized old-format set survives another round trip. Every failure wraps
// ErrInvalidSet.
func Normalize(raw json.RawMessage) (Set, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Set{}, fmt.Errorf("%w: empty", ErrInvalidSet)
	}

	switch raw[0] {
	case '{':
		return normalizeObject(raw)
	case '[':
		return normalizeSequence(raw)
	default:
		return Set{}, fmt.Errorf("%w: unsupported shape", ErrInvalidSet)
	}
}

// NormalizeNumbers runs the old-format path on numbers already in memory.
func NormalizeNumbers(nums []int) (Set, error) {
	kept := make([]int, 0, len(nums))
	for _, n := range nums {
		if inRange(n) {
			kept = append(kept, n)
		}
	}
	return fromNumbers(kept)
}

func normalizeObject(raw json.RawMessage) (Set, error) {
	// Keys match exactly; encoding/json struct decoding would fold case.
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Set{}, fmt.Errorf("%w: %v", ErrInvalidSet, err)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(obj["main"], &items); err != nil || items == nil {
		return Set{}, fmt.Errorf("%w: main is not an array", ErrInvalidSet)
	}
	if len(items) != MainCount {
		return Set{}, fmt.Errorf("%w: main has %d numbers", ErrInvalidSet, len(items))
	}

	main := make([]int, 0, MainCount)
	for _, m := range items {
		n, ok := asNumber(m)
		if !ok {
			return Set{}, fmt.Errorf("%w: main value %s", ErrInvalidSet, m)
		}
		main = append(main, n)
	}
	sort.Ints(main)

	b, ok := obj["bonus"]
	if !ok {
		return Set{}, fmt.Errorf("%w: bonus missing", ErrInvalidSet)
	}
	s := Set{Main: main}
	if b = bytes.TrimSpace(b); !bytes.Equal(b, []byte("null")) {
		n, ok := asNumber(b)
		if !ok {
			return Set{}, fmt.Errorf("%w: bonus value %s", ErrInvalidSet, b)
		}
		s.Bonus = n
	}
	if err := s.Validate(); err != nil {
		return Set{}, err
	}
	return s, nil
}

func normalizeSequence(raw json.RawMessage) (Set, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return Set{}, fmt.Errorf("%w: %v", ErrInvalidSet, err)
	}
	nums := make([]int, 0, len(items))
	for _, it := range items {
		if n, ok := asNumber(it); ok {
			nums = append(nums, n)
		}
	}
	return fromNumbers(nums)
}

// fromNumbers expects numbers already filtered to the valid range.
func fromNumbers(nums []int) (Set, error) {
	uniq := slices.Clone(nums)
	sort.Ints(uniq)
	uniq = slices.Compact(uniq)

	switch {
	case len(uniq) > MainCount:
		main := uniq[:MainCount:MainCount]
		for _, n := range uniq[MainCount:] {
			if !slices.Contains(main, n) {
				return Set{Main: main, Bonus: n}, nil
			}
		}
	case len(uniq) == MainCount:
		// Old history never stored a bonus; leave it unknown.
		return Set{Main: uniq}, nil
	}
	return Set{}, fmt.Errorf("%w: only %d distinct numbers", ErrInvalidSet, len(uniq))
}

// asNumber accepts a JSON number that is integral and within 1~45.
func asNumber(raw json.RawMessage) (int, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	if f != math.Trunc(f) || f < MinNumber || f > MaxNumber {
		return 0, false
	}
	return int(f), true
}
