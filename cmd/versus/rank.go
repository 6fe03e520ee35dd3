package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/versus-rank/versus/internal/catalog"
	"github.com/versus-rank/versus/internal/cli"
	"github.com/versus-rank/versus/internal/common"
	"github.com/versus-rank/versus/internal/engine"
	"github.com/versus-rank/versus/internal/model"
	"github.com/versus-rank/versus/internal/tui"
)

func rankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank <catalog>",
		Short: "Run a pairwise ranking session",
		Long: `Load a catalog file (JSON or YAML) and compare every pair of items.

Each item needs a title and may carry a description and an image path:

  [
    {"title": "Element A", "description": "This is element A", "image": "images/a.png"},
    {"title": "Element B", "description": "This is element B", "image": "images/b.png"}
  ]

The finished ranking is printed and saved to the local history.`,
		Args: cobra.ExactArgs(1),
		RunE: runRank,
	}

	cmd.Flags().Bool("tui", false, "Use the full-screen interface")
	cmd.Flags().Bool("save", true, "Save the finished ranking to history")

	_ = viper.BindPFlag("rank.tui", cmd.Flags().Lookup("tui"))
	_ = viper.BindPFlag("rank.save", cmd.Flags().Lookup("save"))

	return cmd
}

func runRank(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cat, err := catalog.Load(args[0])
	if err != nil {
		return common.NewUserError(fmt.Sprintf("could not load catalog %s", args[0]), err)
	}

	session := engine.NewSession(cat.Len())
	prompter := cli.NewPrompter(os.Stdin, os.Stdout)

	if cat.Len() < 2 {
		slog.Warn("Catalog has fewer than two items; nothing to compare", "catalog", cat.Name())
	}

	var ranking model.Ranking
	if viper.GetBool("rank.tui") {
		ranking, err = tui.Run(ctx, cat, session)
		if errors.Is(err, tui.ErrAbandoned) {
			done, total := session.Progress()
			slog.Info("Ranking abandoned", "judged", done, "total", total)
			return nil
		}
		if err != nil {
			return err
		}
	} else {
		handler := cli.NewInterruptHandler(os.Stdout)
		ctx = handler.HandleInterrupts(ctx)

		err = prompter.Run(ctx, cat, session)
		if errors.Is(err, cli.ErrAbandoned) || errors.Is(err, cli.ErrInputCancelled) {
			done, total := session.Progress()
			slog.Info("Ranking abandoned", "judged", done, "total", total)
			return nil
		}
		if err != nil {
			return err
		}

		ranking, err = session.FinalRanking(cat.Items())
		if err != nil {
			return fmt.Errorf("failed to compute ranking: %w", err)
		}
	}

	if err := prompter.ShowRanking(ranking); err != nil {
		return err
	}

	if viper.GetBool("rank.save") {
		if err := saveRanking(ctx, cat, session, ranking); err != nil {
			return err
		}
	}

	return nil
}

func saveRanking(ctx context.Context, cat *catalog.Catalog, session *engine.Session, ranking model.Ranking) error {
	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	_, comparisons := session.Progress()
	id, err := store.SaveRanking(ctx, cat.Name(), comparisons, ranking)
	if err != nil {
		return fmt.Errorf("failed to save ranking: %w", err)
	}

	slog.Info("Ranking saved", "id", id, "catalog", cat.Name())
	return nil
}
