package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/unclebandit/campaign-builder/internal/model"
)

type DeliveryRepository struct {
	DB *sql.DB
}

// Record inserts a delivery outcome. Replaying a handoff for the same
// draft, contact and channel updates the existing row.
func (r *DeliveryRepository) Record(ctx context.Context, d *model.Delivery) error {
	d.CreatedAt = time.Now()
	query := `
        INSERT INTO deliveries (draft_id, contact_id, channel, status, rendered_content, last_error, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (draft_id, contact_id, channel)
        DO UPDATE SET status = EXCLUDED.status, rendered_content = EXCLUDED.rendered_content, last_error = EXCLUDED.last_error
        RETURNING id
    `
	return r.DB.QueryRowContext(ctx, query,
		d.DraftID, d.ContactID, string(d.Channel), d.Status, d.RenderedContent, d.LastError, d.CreatedAt,
	).Scan(&d.ID)
}

// CountByStatus returns delivery counts for a draft keyed by status.
func (r *DeliveryRepository) CountByStatus(ctx context.Context, draftID string) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, `
        SELECT status, COUNT(*)
        FROM deliveries
        WHERE draft_id = $1
        GROUP BY status
    `, draftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := map[string]int{"total": 0, "sent": 0, "failed": 0}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
		stats["total"] += count
	}
	return stats, rows.Err()
}
