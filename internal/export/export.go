// Package export writes finished rankings to interchange formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/versus-rank/versus/internal/model"
)

// Row is one ranking entry in its serialized form. The same struct serves
// JSON and Parquet output so the two formats never drift apart.
type Row struct {
	Position    int    `json:"position"    parquet:"position"`
	Title       string `json:"title"       parquet:"title"`
	Description string `json:"description" parquet:"description"`
	Image       string `json:"image"       parquet:"image"`
	Wins        int    `json:"wins"        parquet:"wins"`
}

// Rows converts a ranking into serializable rows, positions starting at 1.
func Rows(ranking model.Ranking) []Row {
	rows := make([]Row, len(ranking))
	for i, ranked := range ranking {
		rows[i] = Row{
			Position:    i + 1,
			Title:       ranked.Title,
			Description: ranked.Description,
			Image:       ranked.Image,
			Wins:        ranked.Wins,
		}
	}
	return rows
}

// WriteFile writes a ranking to path, choosing the format by extension
// (.json, .csv, or .parquet).
func WriteFile(path string, ranking model.Ranking) error {
	rows := Rows(ranking)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return writeJSON(path, rows)
	case ".csv":
		return writeCSV(path, rows)
	case ".parquet":
		return writeParquet(path, rows)
	default:
		return fmt.Errorf("unsupported export format: %s (supported: .json, .csv, .parquet)", ext)
	}
}

func writeJSON(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return f.Close()
}

func writeCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"position", "title", "description", "image", "wins"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.Position),
			row.Title,
			row.Description,
			row.Image,
			strconv.Itoa(row.Wins),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	return f.Close()
}

func writeParquet(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	w := parquet.NewGenericWriter[Row](f)
	if _, err := w.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}

	return f.Close()
}
