package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/meltforce/healthbridge/internal/models"
)

// InsertSyncLog records the outcome of one webhook delivery or force-create
// run.
func (db *DB) InsertSyncLog(ctx context.Context, row models.SyncLogRow) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO sync_log (id, user_id, status, metrics_received, created, updated, skipped)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, row.ID, row.UserID, row.Status, row.MetricsReceived, row.Created, row.Updated, row.Skipped)
	if err != nil {
		return fmt.Errorf("inserting sync log: %w", err)
	}
	return nil
}

// RecentSyncLogs returns the most recent sync outcomes.
func (db *DB) RecentSyncLogs(ctx context.Context, limit int) ([]models.SyncLogRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Pool.Query(ctx, `
		SELECT id, user_id, status, metrics_received, created, updated, skipped, received_at
		FROM sync_log
		ORDER BY received_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sync log: %w", err)
	}
	defer rows.Close()

	var result []models.SyncLogRow
	for rows.Next() {
		var l models.SyncLogRow
		if err := rows.Scan(&l.ID, &l.UserID, &l.Status, &l.MetricsReceived,
			&l.Created, &l.Updated, &l.Skipped, &l.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scanning sync log: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}
