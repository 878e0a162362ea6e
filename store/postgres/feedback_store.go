package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nadit/nadit-backend/store"
	"github.com/nadit/nadit-backend/types"
)

// Ensure FeedbackStore implements store.Database
var _ store.Database = (*FeedbackStore)(nil)

// Pool is the subset of *pgxpool.Pool used by the store.
type Pool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close()
}

// FeedbackStore stores feedback rows in PostgreSQL. Tables of the current
// schema play the role of collections.
type FeedbackStore struct {
	pool Pool
	name string
}

// NewFeedbackStore creates a new feedback store backed by a pgx pool.
func NewFeedbackStore(pool Pool, name string) *FeedbackStore {
	return &FeedbackStore{pool: pool, name: name}
}

func (s *FeedbackStore) Name() string {
	return s.name
}

const listTablesQuery = `SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() ORDER BY table_name`

// ListCollections returns the table names of the current schema.
func (s *FeedbackStore) ListCollections(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, listTablesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return names, nil
}

const insertFeedbackQuery = `INSERT INTO feedback (name, email, message, source) VALUES (NULLIF($1, ''), NULLIF($2, ''), $3, $4) RETURNING id::text`

// CreateFeedback inserts a new feedback entry and returns the generated ID.
func (s *FeedbackStore) CreateFeedback(ctx context.Context, fb *types.Feedback) (string, error) {
	var id string
	err := s.pool.QueryRow(ctx, insertFeedbackQuery,
		fb.Name, fb.Email, fb.Message, fb.Source,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create feedback: %w", err)
	}
	return id, nil
}

// Close releases the pool.
func (s *FeedbackStore) Close(_ context.Context) error {
	s.pool.Close()
	return nil
}
