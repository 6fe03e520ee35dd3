package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/versus-rank/versus/internal/cli"
	"github.com/versus-rank/versus/internal/export"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <id> <file>",
		Short: "Export a stored ranking",
		Long: `Write a stored ranking to a file. The format is chosen by the
file extension: .json, .csv, or .parquet.`,
		Args: cobra.ExactArgs(2),
		RunE: runExport,
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid ranking id %q: %w", args[0], err)
	}

	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStorage(store)

	saved, err := store.GetRanking(cmd.Context(), id)
	if err != nil {
		return err
	}

	if err := export.WriteFile(args[1], saved.Items); err != nil {
		return fmt.Errorf("failed to export ranking: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported ranking %d (%s) to %s", saved.ID, saved.CatalogName, args[1])))
	return nil
}
