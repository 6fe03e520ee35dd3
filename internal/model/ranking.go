package model

import (
	"fmt"
	"sort"
)

// RankedItem is one row of a finished ranking: the item, its original
// catalog index, and the number of comparisons it won.
type RankedItem struct {
	Item
	Index int
	Wins  int
}

// Ranking is a slice of RankedItem that supports sorting and utility methods.
type Ranking []RankedItem

// Sort orders the ranking by wins in descending order. Items with equal
// wins keep their catalog order: the smaller original index comes first.
// Callers rely on this being deterministic, so ties never fall back to
// titles or insertion order.
func (r Ranking) Sort() {
	sort.SliceStable(r, func(i, j int) bool {
		if r[i].Wins != r[j].Wins {
			return r[i].Wins > r[j].Wins
		}
		return r[i].Index < r[j].Index
	})
}

// Top returns the highest-ranked item, or nil if the ranking is empty.
func (r Ranking) Top() *RankedItem {
	if len(r) == 0 {
		return nil
	}
	r.Sort()
	return &r[0]
}

// Validate ensures the ranking is a well-formed permutation: every index
// appears exactly once and win counts are non-negative.
func (r Ranking) Validate() error {
	seen := make(map[int]bool, len(r))

	for i, ranked := range r {
		if ranked.Wins < 0 {
			return fmt.Errorf("negative win count %d at position %d", ranked.Wins, i)
		}
		if ranked.Index < 0 || ranked.Index >= len(r) {
			return fmt.Errorf("index %d out of range at position %d", ranked.Index, i)
		}
		if seen[ranked.Index] {
			return fmt.Errorf("duplicate index %d in ranking", ranked.Index)
		}
		seen[ranked.Index] = true
	}

	return nil
}
