// Package engine implements the pairwise comparison engine: pair
// enumeration, progress tracking, win tallies, and the final ranking.
package engine

import (
	"fmt"

	"github.com/versus-rank/versus/internal/common"
	"github.com/versus-rank/versus/internal/model"
)

// Session holds all mutable state for one ranking run: the ordered plan of
// pairs still to judge, a cursor into it, and a per-item win tally. A
// Session is owned by exactly one control flow at a time; it is not safe
// for concurrent use and never needs to be, since one user drives one run.
type Session struct {
	plan   []model.Pair
	tally  []int
	cursor int
}

// NewSession creates a session over a catalog of n items. The plan is every
// pair (i, j) with 0 <= i < j < n in ascending lexicographic order, so a
// given catalog always produces the same comparison sequence. For n < 2
// the plan is empty and the session starts out complete; that is a valid
// terminal state, not an error.
func NewSession(n int) *Session {
	var plan []model.Pair
	if n >= 2 {
		plan = make([]model.Pair, 0, n*(n-1)/2)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				plan = append(plan, model.Pair{I: i, J: j})
			}
		}
	}

	if n < 0 {
		n = 0
	}

	return &Session{
		plan:  plan,
		tally: make([]int, n),
	}
}

// Size returns the number of items the session was created over.
func (s *Session) Size() int {
	return len(s.tally)
}

// CurrentPair returns the pair awaiting a decision. The second return is
// false once every pair has been judged. Reading the current pair has no
// side effects; callers may ask as often as they like.
func (s *Session) CurrentPair() (model.Pair, bool) {
	if s.cursor >= len(s.plan) {
		return model.Pair{}, false
	}
	return s.plan[s.cursor], true
}

// RecordWinner registers index as the winner of the current pair,
// incrementing its tally and advancing the cursor. This is the session's
// only mutating operation. It fails with common.ErrInvalidWinner when the
// session is already complete or index is not a member of the current
// pair; either way the session is left untouched, since both indicate a
// caller defect rather than anything recoverable.
func (s *Session) RecordWinner(index int) error {
	pair, ok := s.CurrentPair()
	if !ok {
		return fmt.Errorf("%w: no comparisons remain", common.ErrInvalidWinner)
	}
	if !pair.Contains(index) {
		return fmt.Errorf("%w: index %d is not in pair %s", common.ErrInvalidWinner, index, pair)
	}

	s.tally[index]++
	s.cursor++
	return nil
}

// IsComplete reports whether every pair in the plan has been judged.
func (s *Session) IsComplete() bool {
	return s.cursor == len(s.plan)
}

// Progress returns how many comparisons are done and how many the plan
// holds in total.
func (s *Session) Progress() (done, total int) {
	return s.cursor, len(s.plan)
}

// Wins returns the accumulated win count for a catalog index.
func (s *Session) Wins(index int) int {
	if index < 0 || index >= len(s.tally) {
		return 0
	}
	return s.tally[index]
}

// FinalRanking orders items by descending win count, breaking ties by
// original catalog position. items must be the catalog the session was
// created over. The session has to be complete first; a partial tally is
// never exposed as a ranking, so an interrupted run fails with
// common.ErrNotComplete instead of producing a misleading interim order.
func (s *Session) FinalRanking(items []model.Item) (model.Ranking, error) {
	if !s.IsComplete() {
		done, total := s.Progress()
		return nil, fmt.Errorf("%w: %d of %d comparisons judged", common.ErrNotComplete, done, total)
	}
	if len(items) != len(s.tally) {
		return nil, fmt.Errorf("catalog has %d items but session was created over %d", len(items), len(s.tally))
	}

	ranking := make(model.Ranking, len(items))
	for i, item := range items {
		ranking[i] = model.RankedItem{
			Item:  item,
			Index: i,
			Wins:  s.tally[i],
		}
	}
	ranking.Sort()

	return ranking, nil
}
