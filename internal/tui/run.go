package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/versus-rank/versus/internal/catalog"
	"github.com/versus-rank/versus/internal/engine"
	"github.com/versus-rank/versus/internal/model"
)

// ErrAbandoned is returned when the user quits before judging every pair.
var ErrAbandoned = errors.New("ranking abandoned")

// Run drives a comparison session to completion in the full-screen
// interface and returns the final ranking. It returns ErrAbandoned when
// the user quits early; the session holds whatever progress was made.
func Run(ctx context.Context, cat *catalog.Catalog, session *engine.Session) (model.Ranking, error) {
	p := tea.NewProgram(
		New(cat, session),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run comparison interface: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}

	if m.Abandoned() {
		return nil, ErrAbandoned
	}

	if ranking := m.Ranking(); ranking != nil {
		return ranking, nil
	}

	// The window closed without a quit key (context cancellation).
	return nil, ErrAbandoned
}
