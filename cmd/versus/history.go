package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/versus-rank/versus/internal/catalog"
	"github.com/versus-rank/versus/internal/cli"
	"github.com/versus-rank/versus/internal/common"
	"github.com/versus-rank/versus/internal/storage"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse finished rankings",
		RunE:  runHistoryList,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id|catalog>",
		Short: "Display one stored ranking",
		Long: `Display a stored ranking by its id, or by catalog name.
Catalog names are matched fuzzily, so "movis" finds "movies".`,
		Args: cobra.ExactArgs(1),
		RunE: runHistoryShow,
	})

	return cmd
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStorage(store)

	rankings, err := store.ListRankings(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list rankings: %w", err)
	}

	if len(rankings) == 0 {
		fmt.Println(cli.FormatInfo("No rankings yet. Run 'versus rank <catalog>' to create one."))
		return nil
	}

	fmt.Println(cli.FormatTitle("Ranking history"))
	for _, r := range rankings {
		fmt.Printf("  %4d  %-24s  %3d items  %4d comparisons  %s\n",
			r.ID, r.CatalogName, r.ItemCount, r.ComparisonCount,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	saved, err := lookupRanking(cmd, store, args[0])
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("%s · ranked %s",
		saved.CatalogName, saved.CreatedAt.Format("2006-01-02 15:04"))))

	prompter := cli.NewPrompter(os.Stdin, os.Stdout)
	return prompter.ShowRanking(saved.Items)
}

// lookupRanking resolves an id or a (possibly misspelled) catalog name to
// a stored ranking.
func lookupRanking(cmd *cobra.Command, store *storage.SQLiteStorage, arg string) (*storage.SavedRanking, error) {
	ctx := cmd.Context()

	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return store.GetRanking(ctx, id)
	}

	saved, err := store.LatestRankingFor(ctx, arg)
	if err == nil {
		return saved, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	// No exact name match; try the closest stored catalog name.
	rankings, listErr := store.ListRankings(ctx)
	if listErr != nil {
		return nil, fmt.Errorf("failed to list rankings: %w", listErr)
	}

	names := make([]string, len(rankings))
	for i, r := range rankings {
		names[i] = r.CatalogName
	}

	idx, ok := catalog.ClosestName(arg, names)
	if !ok {
		return nil, err
	}

	slog.Debug("Fuzzy catalog name match", "query", arg, "matched", names[idx])
	return store.GetRanking(ctx, rankings[idx].ID)
}

func closeStorage(store *storage.SQLiteStorage) {
	if err := store.Close(); err != nil {
		slog.Warn("Failed to close database", "error", err)
	}
}
