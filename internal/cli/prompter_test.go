package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/versus-rank/versus/internal/catalog"
	"github.com/versus-rank/versus/internal/engine"
	"github.com/versus-rank/versus/internal/model"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New("test", []model.Item{
		{Title: "Element A", Description: "This is element A"},
		{Title: "Element B", Description: "This is element B"},
		{Title: "Element C", Image: "images/c.png"},
	})
	require.NoError(t, err)
	return cat
}

func TestPrompter_Run_CompletesSession(t *testing.T) {
	cat := testCatalog(t)
	session := engine.NewSession(cat.Len())

	// Pairs arrive as (0,1), (0,2), (1,2): A wins, A wins, C wins.
	input := strings.NewReader("1\n1\n2\n")
	var output bytes.Buffer

	prompter := NewPrompter(input, &output)
	err := prompter.Run(context.Background(), cat, session)
	require.NoError(t, err)

	assert.True(t, session.IsComplete())
	assert.Equal(t, 2, session.Wins(0))
	assert.Equal(t, 0, session.Wins(1))
	assert.Equal(t, 1, session.Wins(2))

	transcript := output.String()
	assert.Contains(t, transcript, "Element A")
	assert.Contains(t, transcript, "Element B")
	assert.Contains(t, transcript, "Which one do you prefer?")
}

func TestPrompter_Run_RetriesInvalidInput(t *testing.T) {
	cat := testCatalog(t)
	session := engine.NewSession(cat.Len())

	input := strings.NewReader("x\n3\n1\n1\n2\n")
	var output bytes.Buffer

	prompter := NewPrompter(input, &output)
	err := prompter.Run(context.Background(), cat, session)
	require.NoError(t, err)

	assert.True(t, session.IsComplete())
	assert.Contains(t, output.String(), "Please enter one of")
}

func TestPrompter_Run_Quit(t *testing.T) {
	cat := testCatalog(t)
	session := engine.NewSession(cat.Len())

	input := strings.NewReader("1\nq\n")
	var output bytes.Buffer

	prompter := NewPrompter(input, &output)
	err := prompter.Run(context.Background(), cat, session)
	require.ErrorIs(t, err, ErrAbandoned)

	done, total := session.Progress()
	assert.Equal(t, 1, done)
	assert.Equal(t, 3, total)
	assert.False(t, session.IsComplete())
}

func TestPrompter_Run_ContextCancelled(t *testing.T) {
	cat := testCatalog(t)
	session := engine.NewSession(cat.Len())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A reader that never delivers input; cancellation must win.
	blocked, _ := newBlockedReader()
	prompter := NewPrompter(blocked, &bytes.Buffer{})

	err := prompter.Run(ctx, cat, session)
	require.ErrorIs(t, err, ErrInputCancelled)
	assert.False(t, session.IsComplete())
}

func TestPrompter_Run_TinyCatalogIsNoOp(t *testing.T) {
	cat, err := catalog.New("solo", []model.Item{{Title: "Only"}})
	require.NoError(t, err)

	session := engine.NewSession(cat.Len())
	var output bytes.Buffer

	prompter := NewPrompter(strings.NewReader(""), &output)
	require.NoError(t, prompter.Run(context.Background(), cat, session))
	assert.True(t, session.IsComplete())
	assert.Empty(t, output.String())
}

func TestPrompter_ShowRanking(t *testing.T) {
	ranking := model.Ranking{
		{Item: model.Item{Title: "Element A", Description: "This is element A"}, Index: 0, Wins: 2},
		{Item: model.Item{Title: "Element C"}, Index: 2, Wins: 1},
		{Item: model.Item{Title: "Element B"}, Index: 1, Wins: 0},
	}

	var output bytes.Buffer
	prompter := NewPrompter(strings.NewReader(""), &output)
	require.NoError(t, prompter.ShowRanking(ranking))

	transcript := output.String()
	assert.Contains(t, transcript, "Final ranking")
	assert.Contains(t, transcript, "Element A")
	assert.Contains(t, transcript, "(2 wins)")

	// Order on the page must match the ranking.
	posA := strings.Index(transcript, "Element A")
	posC := strings.Index(transcript, "Element C")
	posB := strings.Index(transcript, "Element B")
	assert.Less(t, posA, posC)
	assert.Less(t, posC, posB)
}
