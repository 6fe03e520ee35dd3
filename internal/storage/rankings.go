package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/versus-rank/versus/internal/common"
	"github.com/versus-rank/versus/internal/model"
)

// SavedRanking is a completed ranking as stored in the database.
type SavedRanking struct {
	CreatedAt       time.Time
	CatalogName     string
	Items           model.Ranking
	ID              int64
	ItemCount       int
	ComparisonCount int
}

// SaveRanking persists a completed ranking and returns its assigned id.
// The ranking is written in final order, so position in ranking_items is
// the display order and needs no re-sort on read.
func (s *SQLiteStorage) SaveRanking(ctx context.Context, catalogName string, comparisons int, ranking model.Ranking) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(catalogName, "catalogName"); err != nil {
		return 0, err
	}
	if err := ranking.Validate(); err != nil {
		return 0, fmt.Errorf("invalid ranking: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO rankings (catalog_name, item_count, comparison_count) VALUES (?, ?, ?)`,
		catalogName, len(ranking), comparisons)
	if err != nil {
		return 0, fmt.Errorf("failed to insert ranking: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get ranking id: %w", err)
	}

	for pos, ranked := range ranking {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO ranking_items (ranking_id, position, item_index, title, description, image, wins)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, pos, ranked.Index, ranked.Title, ranked.Description, ranked.Image, ranked.Wins); err != nil {
			return 0, fmt.Errorf("failed to insert ranking item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit ranking: %w", err)
	}

	return id, nil
}

// ListRankings returns all stored rankings, newest first, without items.
func (s *SQLiteStorage) ListRankings(ctx context.Context) ([]SavedRanking, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, catalog_name, item_count, comparison_count, created_at
		 FROM rankings ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rankings: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var rankings []SavedRanking
	for rows.Next() {
		var r SavedRanking
		if err := rows.Scan(&r.ID, &r.CatalogName, &r.ItemCount, &r.ComparisonCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ranking: %w", err)
		}
		rankings = append(rankings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rankings: %w", err)
	}

	return rankings, nil
}

// GetRanking loads one stored ranking with its items in final order.
func (s *SQLiteStorage) GetRanking(ctx context.Context, id int64) (*SavedRanking, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var r SavedRanking
	err := s.db.QueryRowContext(ctx,
		`SELECT id, catalog_name, item_count, comparison_count, created_at
		 FROM rankings WHERE id = ?`, id).
		Scan(&r.ID, &r.CatalogName, &r.ItemCount, &r.ComparisonCount, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: ranking %d", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query ranking: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT item_index, title, description, image, wins
		 FROM ranking_items WHERE ranking_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranking items: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var ranked model.RankedItem
		var description, image sql.NullString
		if err := rows.Scan(&ranked.Index, &ranked.Title, &description, &image, &ranked.Wins); err != nil {
			return nil, fmt.Errorf("failed to scan ranking item: %w", err)
		}
		ranked.Description = description.String
		ranked.Image = image.String
		r.Items = append(r.Items, ranked)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ranking items: %w", err)
	}

	return &r, nil
}

// LatestRankingFor returns the most recent stored ranking for a catalog name.
func (s *SQLiteStorage) LatestRankingFor(ctx context.Context, catalogName string) (*SavedRanking, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(catalogName, "catalogName"); err != nil {
		return nil, err
	}

	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM rankings WHERE catalog_name = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		catalogName).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no rankings for catalog %q", common.ErrNotFound, catalogName)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest ranking: %w", err)
	}

	return s.GetRanking(ctx, id)
}
