package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/padraicbc/racecal/models"
)

const batchSize = 500

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("db: not found")

// Store runs the queries the server and the CLIs need.
type Store struct {
	db *bun.DB
}

// NewStore wraps an open bun connection.
func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

// UserByUsername loads one operator account.
func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := s.db.NewSelect().Model(user).
		Where("username = ?", username).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return user, nil
}

// UpsertUser creates the account or replaces its password hash.
func (s *Store) UpsertUser(ctx context.Context, user *models.User) error {
	_, err := s.db.NewInsert().Model(user).
		On("CONFLICT (username) DO UPDATE SET password = EXCLUDED.password").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// SaveSnapshot stores races as a new import in one transaction. The races
// passed in are copied, never modified.
func (s *Store) SaveSnapshot(ctx context.Context, source, exportURL string, races []models.Race) (*models.Import, error) {
	imp := &models.Import{
		Source:    source,
		ExportURL: exportURL,
		RaceCount: len(races),
		CreatedAt: time.Now(),
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(imp).Returning("id").Exec(ctx); err != nil {
			return fmt.Errorf("insert import: %w", err)
		}

		rows := SnapshotRows(imp.ID, races)
		for start := 0; start < len(rows); start += batchSize {
			batch := rows[start:min(start+batchSize, len(rows))]
			if _, err := tx.NewInsert().Model(&batch).Exec(ctx); err != nil {
				return fmt.Errorf("insert races %d-%d: %w", start, start+len(batch), err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return imp, nil
}

// LatestSnapshot returns the newest import and its races in sheet order.
func (s *Store) LatestSnapshot(ctx context.Context) (*models.Import, []models.Race, error) {
	imp := &models.Import{}
	err := s.db.NewSelect().Model(imp).OrderExpr("id DESC").Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("select import: %w", err)
	}

	var races []models.Race
	err = s.db.NewSelect().Model(&races).
		Where("import_id = ?", imp.ID).
		OrderExpr("position ASC").
		Scan(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("select races: %w", err)
	}
	return imp, races, nil
}

// SnapshotRows copies races and tags each copy with the import id and its
// position in the sheet.
func SnapshotRows(importID int64, races []models.Race) []models.Race {
	rows := make([]models.Race, len(races))
	for i, r := range races {
		r.ImportID = importID
		r.Position = i
		rows[i] = r
	}
	return rows
}
