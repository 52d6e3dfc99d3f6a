// Package lotto holds the Lotto 6/45 domain: number sets, the random
// generator, normalization of stored sets and the bounded history.
package lotto

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

const (
	MinNumber = 1
	MaxNumber = 45
	MainCount = 6

	DefaultSetCount = 5
	MaxSetCount     = 10
)

// ErrInvalidSet marks a set that must be dropped from display and export.
var ErrInvalidSet = errors.New("invalid lotto set")

// Set is one recommended draw. Bonus is 0 when it is unknown, which only
// happens for sets restored from the old 6-number history format.
type Set struct {
	Main  []int
	Bonus int
}

// HasBonus reports whether the bonus number is known.
func (s Set) HasBonus() bool {
	return s.Bonus != 0
}

// Validate checks that main holds 6 distinct ascending numbers in range and
// that a known bonus is in range and not one of them.
func (s Set) Validate() error {
	if len(s.Main) != MainCount {
		return fmt.Errorf("%w: main has %d numbers", ErrInvalidSet, len(s.Main))
	}
	for i, n := range s.Main {
		if !inRange(n) {
			return fmt.Errorf("%w: %d out of range", ErrInvalidSet, n)
		}
		if i > 0 && s.Main[i-1] >= n {
			return fmt.Errorf("%w: main is not strictly ascending", ErrInvalidSet)
		}
	}
	if !s.HasBonus() {
		return nil
	}
	if !inRange(s.Bonus) {
		return fmt.Errorf("%w: bonus %d out of range", ErrInvalidSet, s.Bonus)
	}
	if slices.Contains(s.Main, s.Bonus) {
		return fmt.Errorf("%w: bonus %d duplicates a main number", ErrInvalidSet, s.Bonus)
	}
	return nil
}

// Equal reports whether both sets hold the same numbers.
func (s Set) Equal(o Set) bool {
	return s.Bonus == o.Bonus && slices.Equal(s.Main, o.Main)
}

type setJSON struct {
	Main  []int `json:"main"`
	Bonus *int  `json:"bonus"`
}

func (s Set) MarshalJSON() ([]byte, error) {
	v := setJSON{Main: s.Main}
	if v.Main == nil {
		v.Main = []int{}
	}
	if s.HasBonus() {
		b := s.Bonus
		v.Bonus = &b
	}
	return json.Marshal(v)
}

// UnmarshalJSON accepts both stored shapes and fails with ErrInvalidSet for
// anything Normalize rejects.
func (s *Set) UnmarshalJSON(b []byte) error {
	n, err := Normalize(b)
	if err != nil {
		return err
	}
	*s = n
	return nil
}

func inRange(n int) bool {
	return n >= MinNumber && n <= MaxNumber
}
