package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"

	"github.com/versus-rank/versus/internal/catalog"
	"github.com/versus-rank/versus/internal/engine"
	"github.com/versus-rank/versus/internal/model"
)

// ErrAbandoned is returned when the user quits before judging every pair.
var ErrAbandoned = errors.New("ranking abandoned")

// Prompter walks a user through a comparison session on a plain terminal:
// it shows the current pair, reads a 1/2 choice, reports the winner to the
// session, and repeats until the plan is exhausted.
type Prompter struct {
	writer      io.Writer
	reader      *NonBlockingReader
	progressBar *progressbar.ProgressBar
}

// NewPrompter creates a prompter over the given reader and writer.
// Nil arguments default to stdin and stdout.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// Run drives the session to completion. It returns ErrAbandoned when the
// user quits early and ErrInputCancelled when the context is canceled;
// either way the session is simply left where it stopped.
func (p *Prompter) Run(ctx context.Context, cat *catalog.Catalog, session *engine.Session) error {
	if session.IsComplete() {
		// A catalog of fewer than two items has nothing to compare.
		return nil
	}

	_, total := session.Progress()
	if _, err := fmt.Fprintln(p.writer, FormatTitle(fmt.Sprintf("Ranking %q: %d comparisons ahead", cat.Name(), total))); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for !session.IsComplete() {
		pair, ok := session.CurrentPair()
		if !ok {
			break
		}

		if err := p.showPair(cat.Item(pair.I), cat.Item(pair.J)); err != nil {
			return err
		}

		choice, err := p.promptChoice(ctx, "Which one do you prefer? [1/2, q to quit]", []string{"1", "2", "q"})
		if err != nil {
			return err
		}

		var winner int
		switch choice {
		case "1":
			winner = pair.I
		case "2":
			winner = pair.J
		case "q":
			return ErrAbandoned
		}

		if err := session.RecordWinner(winner); err != nil {
			return fmt.Errorf("failed to record winner: %w", err)
		}
		p.updateProgress(session)
	}

	return nil
}

// showPair renders the two candidates side by side as numbered boxes.
func (p *Prompter) showPair(left, right model.Item) error {
	row := lipgloss.JoinHorizontal(
		lipgloss.Top,
		RenderBox("[1] "+left.Title, formatItem(left)),
		"  ",
		RenderBox("[2] "+right.Title, formatItem(right)),
	)

	if _, err := fmt.Fprintln(p.writer, "\n"+row); err != nil {
		return fmt.Errorf("failed to write pair: %w", err)
	}
	return nil
}

// ShowRanking renders a finished ranking as a numbered table.
func (p *Prompter) ShowRanking(ranking model.Ranking) error {
	if _, err := fmt.Fprintln(p.writer, "\n"+TitleStyle.Render(TrophyIcon+" Final ranking")); err != nil {
		return fmt.Errorf("failed to write ranking title: %w", err)
	}

	for pos, ranked := range ranking {
		line := fmt.Sprintf("%3d. %s  %s",
			pos+1,
			BoldStyle.Render(ranked.Title),
			SubtleStyle.Render(fmt.Sprintf("(%d wins)", ranked.Wins)),
		)
		if ranked.Description != "" {
			line += "\n     " + SubtleStyle.Render(ranked.Description)
		}
		if _, err := fmt.Fprintln(p.writer, line); err != nil {
			return fmt.Errorf("failed to write ranking row: %w", err)
		}
	}

	return nil
}

// promptChoice asks for input until one of the valid choices is entered.
func (p *Prompter) promptChoice(ctx context.Context, prompt string, valid []string) (string, error) {
	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := p.reader.ReadLine(ctx)
		if err != nil {
			return "", err
		}

		choice := strings.ToLower(strings.TrimSpace(line))
		for _, v := range valid {
			if choice == v {
				return choice, nil
			}
		}

		if _, err := fmt.Fprintln(p.writer, FormatWarning(fmt.Sprintf("Please enter one of: %s", strings.Join(valid, ", ")))); err != nil {
			return "", fmt.Errorf("failed to write retry message: %w", err)
		}
	}
}

// updateProgress advances the progress bar, creating it lazily so the bar
// only appears once the first decision lands.
func (p *Prompter) updateProgress(session *engine.Session) {
	done, total := session.Progress()

	if p.progressBar == nil {
		p.progressBar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.writer),
			progressbar.OptionSetDescription("Comparisons"),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionShowCount(),
		)
	}

	_ = p.progressBar.Set(done)
	_, _ = fmt.Fprintln(p.writer)
}

// formatItem builds the box body for one candidate.
func formatItem(item model.Item) string {
	var b strings.Builder

	if item.Description != "" {
		b.WriteString(item.Description)
	}
	if item.Image != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(SubtleStyle.Render("image: " + item.Image))
	}
	if b.Len() == 0 {
		b.WriteString(SubtleStyle.Render("(no description)"))
	}

	return b.String()
}
