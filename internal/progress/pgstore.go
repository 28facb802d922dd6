package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore is a PostgreSQL-backed Store.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a PgStore.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// EnsureTable creates the mission_progress table if it doesn't exist.
func (s *PgStore) EnsureTable(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS mission_progress (
			id           TEXT PRIMARY KEY,
			crosser_id   TEXT NOT NULL,
			mission_id   TEXT NOT NULL,
			completed_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE (crosser_id, mission_id)
		)`)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS idx_mission_progress_crosser ON mission_progress(crosser_id)`)
	return err
}

func (s *PgStore) MarkComplete(ctx context.Context, crosserID, missionID string) error {
	id := uuid.Must(uuid.NewV7()).String()
	now := time.Now().Truncate(time.Microsecond)

	_, err := s.pool.Exec(ctx, `
		INSERT INTO mission_progress (id, crosser_id, mission_id, completed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (crosser_id, mission_id) DO NOTHING`,
		id, crosserID, missionID, now)
	if err != nil {
		return fmt.Errorf("mark complete: %w", err)
	}
	return nil
}

func (s *PgStore) IsComplete(ctx context.Context, crosserID, missionID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM mission_progress WHERE crosser_id = $1 AND mission_id = $2
		)`, crosserID, missionID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("is complete: %w", err)
	}
	return exists, nil
}

func (s *PgStore) Completed(ctx context.Context, crosserID string) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT mission_id FROM mission_progress
		WHERE crosser_id = $1
		ORDER BY completed_at`, crosserID)
	if err != nil {
		return nil, fmt.Errorf("completed: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var missionID string
		if err := rows.Scan(&missionID); err != nil {
			return nil, err
		}
		out = append(out, missionID)
	}
	return out, rows.Err()
}
