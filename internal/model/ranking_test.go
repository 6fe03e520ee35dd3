package model

import (
	"testing"
)

func TestRanking_Sort(t *testing.T) {
	tests := []struct {
		name      string
		ranking   Ranking
		wantOrder []string
	}{
		{
			name: "descending by wins",
			ranking: Ranking{
				{Item: Item{Title: "B"}, Index: 1, Wins: 1},
				{Item: Item{Title: "A"}, Index: 0, Wins: 2},
				{Item: Item{Title: "C"}, Index: 2, Wins: 0},
			},
			wantOrder: []string{"A", "B", "C"},
		},
		{
			name: "ties break by catalog index",
			ranking: Ranking{
				{Item: Item{Title: "C"}, Index: 2, Wins: 1},
				{Item: Item{Title: "A"}, Index: 0, Wins: 1},
				{Item: Item{Title: "B"}, Index: 1, Wins: 1},
			},
			wantOrder: []string{"A", "B", "C"},
		},
		{
			name: "mixed wins and ties",
			ranking: Ranking{
				{Item: Item{Title: "D"}, Index: 3, Wins: 0},
				{Item: Item{Title: "C"}, Index: 2, Wins: 2},
				{Item: Item{Title: "B"}, Index: 1, Wins: 2},
				{Item: Item{Title: "A"}, Index: 0, Wins: 3},
			},
			wantOrder: []string{"A", "B", "C", "D"},
		},
		{
			name:      "empty ranking",
			ranking:   Ranking{},
			wantOrder: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.ranking.Sort()

			if len(tt.ranking) != len(tt.wantOrder) {
				t.Fatalf("ranking has %d rows, want %d", len(tt.ranking), len(tt.wantOrder))
			}
			for i, want := range tt.wantOrder {
				if tt.ranking[i].Title != want {
					t.Errorf("position %d = %q, want %q", i, tt.ranking[i].Title, want)
				}
			}
		})
	}
}

func TestRanking_Top(t *testing.T) {
	var empty Ranking
	if empty.Top() != nil {
		t.Error("Top() of empty ranking should be nil")
	}

	ranking := Ranking{
		{Item: Item{Title: "B"}, Index: 1, Wins: 5},
		{Item: Item{Title: "A"}, Index: 0, Wins: 2},
	}
	top := ranking.Top()
	if top == nil || top.Title != "B" {
		t.Errorf("Top() = %v, want B", top)
	}
}

func TestRanking_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ranking Ranking
		wantErr bool
	}{
		{
			name: "valid permutation",
			ranking: Ranking{
				{Index: 1, Wins: 1},
				{Index: 0, Wins: 0},
			},
		},
		{
			name: "duplicate index",
			ranking: Ranking{
				{Index: 0, Wins: 1},
				{Index: 0, Wins: 0},
			},
			wantErr: true,
		},
		{
			name: "index out of range",
			ranking: Ranking{
				{Index: 0, Wins: 0},
				{Index: 5, Wins: 0},
			},
			wantErr: true,
		},
		{
			name: "negative wins",
			ranking: Ranking{
				{Index: 0, Wins: -1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ranking.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPair_Contains(t *testing.T) {
	p := Pair{I: 2, J: 5}

	for _, index := range []int{2, 5} {
		if !p.Contains(index) {
			t.Errorf("Contains(%d) = false, want true", index)
		}
	}
	for _, index := range []int{0, 3, -1} {
		if p.Contains(index) {
			t.Errorf("Contains(%d) = true, want false", index)
		}
	}
}

func TestItem_Validate(t *testing.T) {
	valid := Item{Title: "Element A", Description: "This is element A", Image: "images/a.png"}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() = %v for valid item", err)
	}

	missing := Item{Description: "no title"}
	if err := missing.Validate(); err == nil {
		t.Error("Validate() succeeded for item without title")
	}
}
