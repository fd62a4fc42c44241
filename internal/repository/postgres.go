package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/ecoleta/internal/models"
)

// MaxDeliveryAttempts is the number of failed deliveries after which an entry is no longer retried.
const MaxDeliveryAttempts = 5

// ErrEntryNotFound is returned when an outbox entry does not exist.
var ErrEntryNotFound = errors.New("outbox entry not found")

const schema = `
	CREATE TABLE IF NOT EXISTS point_outbox (
		id                BIGSERIAL PRIMARY KEY,
		name              TEXT NOT NULL,
		email             TEXT NOT NULL,
		whatsapp          TEXT NOT NULL,
		city              TEXT NOT NULL,
		uf                TEXT NOT NULL,
		latitude          DOUBLE PRECISION NOT NULL,
		longitude         DOUBLE PRECISION NOT NULL,
		items             TEXT NOT NULL,
		image_name        TEXT,
		image_type        TEXT,
		image_data        BYTEA,
		delivery_attempts INTEGER NOT NULL DEFAULT 0,
		delivery_error    TEXT,
		point_id          INTEGER,
		delivered_at      TIMESTAMPTZ,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

// Migrate creates the outbox table when it does not exist yet.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create outbox table: %w", err)
	}

	return nil
}

// Enqueue stores a submission for redelivery together with the error of the
// failed attempt, and returns the id of the new entry.
func (r *Repository) Enqueue(ctx context.Context, sub models.Submission, errMsg string) (int64, error) {
	query := `
		INSERT INTO point_outbox
			(name, email, whatsapp, city, uf, latitude, longitude, items,
			 image_name, image_type, image_data, delivery_attempts, delivery_error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1, $12)
		RETURNING id;
	`

	var image models.Image
	if sub.Image != nil {
		image = *sub.Image
	}

	var id int64
	err := r.db.QueryRow(ctx, query,
		sub.Name, sub.Email, sub.Whatsapp, sub.City, sub.UF,
		sub.Position.Latitude, sub.Position.Longitude, models.JoinIDs(sub.Items),
		image.Filename, image.ContentType, image.Data, errMsg,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to enqueue submission: %w", err)
	}

	r.log.DebugContext(ctx, "Submission queued for redelivery", "id", id, "name", sub.Name)

	return id, nil
}

// FetchPending retrieves undelivered entries that failed fewer than
// MaxDeliveryAttempts times, oldest first, up to limit entries.
func (r *Repository) FetchPending(ctx context.Context, limit int) ([]models.OutboxEntry, error) {
	query := `
		SELECT id, name, email, whatsapp, city, uf, latitude, longitude, items,
			COALESCE(image_name, ''), COALESCE(image_type, ''), image_data, delivery_attempts
		FROM point_outbox
		WHERE
			delivered_at IS NULL
			AND delivery_attempts < $1
		ORDER BY created_at ASC
		LIMIT $2;
	`

	rows, err := r.db.Query(ctx, query, MaxDeliveryAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending submissions: %w", err)
	}
	defer rows.Close()

	var entries []models.OutboxEntry
	for rows.Next() {
		var (
			entry models.OutboxEntry
			items string
			image models.Image
		)
		sub := &entry.Submission
		if errScan := rows.Scan(
			&entry.ID, &sub.Name, &sub.Email, &sub.Whatsapp, &sub.City, &sub.UF,
			&sub.Position.Latitude, &sub.Position.Longitude, &items,
			&image.Filename, &image.ContentType, &image.Data, &entry.Attempts,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan pending submission: %w", errScan)
		}

		if sub.Items, err = models.ParseIDs(items); err != nil {
			return nil, fmt.Errorf("failed to parse items of submission %d: %w", entry.ID, err)
		}
		if len(image.Data) > 0 {
			sub.Image = &image
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return entries, nil
}

// MarkDelivered records a successful redelivery of the entry.
func (r *Repository) MarkDelivered(ctx context.Context, id int64, pointID int) error {
	query := `
		UPDATE point_outbox
		SET
			delivered_at = now(),
			point_id = $1,
			delivery_error = NULL
		WHERE id = $2;
	`

	tag, err := r.db.Exec(ctx, query, nullIfZero(pointID), id)
	if err != nil {
		return fmt.Errorf("failed to mark submission as delivered: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %d", ErrEntryNotFound, id)
	}

	return nil
}

// IncrementFailureCount increments the delivery attempt count of the entry
// and stores the error of the last attempt.
func (r *Repository) IncrementFailureCount(ctx context.Context, id int64, errMsg string) error {
	query := `
		UPDATE point_outbox
		SET
			delivery_attempts = delivery_attempts + 1,
			delivery_error = $1
		WHERE id = $2;
	`

	_, err := r.db.Exec(ctx, query, errMsg, id)
	if err != nil {
		return fmt.Errorf("failed to update delivery error and number of attempts: %w", err)
	}

	return nil
}

// Abandon stops redelivery of the entry and stores the reason. The entry is
// kept for inspection.
func (r *Repository) Abandon(ctx context.Context, id int64, errMsg string) error {
	query := `
		UPDATE point_outbox
		SET
			delivery_attempts = GREATEST(delivery_attempts, $1),
			delivery_error = $2
		WHERE id = $3;
	`

	_, err := r.db.Exec(ctx, query, MaxDeliveryAttempts, errMsg, id)
	if err != nil {
		return fmt.Errorf("failed to abandon outbox entry: %w", err)
	}

	return nil
}

func nullIfZero(v int) any {
	if v == 0 {
		return nil
	}
	return v
}
