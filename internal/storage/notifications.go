package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/meltforce/healthbridge/internal/models"
)

// UpsertNotification creates or replaces a persistent notification. Repeated
// writes under the same notification ID update the existing row in place.
func (db *DB) UpsertNotification(ctx context.Context, notificationID, title, message string) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO notifications (id, notification_id, title, message)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (notification_id) DO UPDATE
			SET title = EXCLUDED.title, message = EXCLUDED.message, created_at = NOW()
	`, uuid.New(), notificationID, title, message)
	if err != nil {
		return fmt.Errorf("upserting notification %s: %w", notificationID, err)
	}
	return nil
}

// ListNotifications returns all persistent notifications, newest first.
func (db *DB) ListNotifications(ctx context.Context) ([]models.NotificationRow, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, notification_id, title, message, created_at
		FROM notifications
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer rows.Close()

	var result []models.NotificationRow
	for rows.Next() {
		var n models.NotificationRow
		if err := rows.Scan(&n.ID, &n.NotificationID, &n.Title, &n.Message, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}
		result = append(result, n)
	}
	return result, rows.Err()
}
