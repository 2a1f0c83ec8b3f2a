package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
)

type outboxRepository struct {
	BaseRepository
}

func NewOutboxRepository(base BaseRepository) repository.OutboxRepository {
	return &outboxRepository{base}
}

// ProcessPending claims up to limit pending events with SKIP LOCKED so several
// workers can poll the same table. Events that fail maxAttempts times are
// parked as failed.
func (r *outboxRepository) ProcessPending(
	ctx context.Context,
	limit, maxAttempts int,
	handle func(context.Context, *model.OutboxEvent) error,
) (int, error) {
	processed := 0
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			SELECT id, event_type, payload, status, error_message, retry_count,
				created_at, processed_at, updated_at
			FROM outbox_events
			WHERE status = $1
			ORDER BY created_at ASC
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		`
		var events []*model.OutboxEvent
		if err := tx.SelectContext(ctx, &events, query, model.OutboxStatusPending, limit); err != nil {
			return fmt.Errorf("failed to get pending events: %w", err)
		}

		for _, evt := range events {
			if err := handle(ctx, evt); err != nil {
				if uerr := markRetry(ctx, tx, evt, err, maxAttempts); uerr != nil {
					return uerr
				}
				continue
			}
			if _, err := tx.ExecContext(ctx, `
				UPDATE outbox_events
				SET status = $1, error_message = NULL, processed_at = NOW(), updated_at = NOW()
				WHERE id = $2
			`, model.OutboxStatusProcessed, evt.ID); err != nil {
				return fmt.Errorf("failed to mark event processed: %w", err)
			}
			processed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return processed, nil
}

func markRetry(ctx context.Context, tx *sqlx.Tx, evt *model.OutboxEvent, cause error, maxAttempts int) error {
	evt.RetryCount++
	status := model.OutboxStatusPending
	if maxAttempts > 0 && evt.RetryCount >= maxAttempts {
		status = model.OutboxStatusFailed
	}
	msg := cause.Error()
	evt.Status = status
	evt.ErrorMessage = &msg

	_, err := tx.ExecContext(ctx, `
		UPDATE outbox_events
		SET status = $1, error_message = $2, retry_count = $3, updated_at = NOW()
		WHERE id = $4
	`, status, msg, evt.RetryCount, evt.ID)
	if err != nil {
		return fmt.Errorf("failed to update event status: %w", err)
	}
	return nil
}

func (r *outboxRepository) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	query := `
		DELETE FROM outbox_events
		WHERE status = $1
		AND processed_at < $2
	`
	result, err := r.db.ExecContext(ctx, query, model.OutboxStatusProcessed, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete processed events: %w", err)
	}

	return result.RowsAffected()
}
