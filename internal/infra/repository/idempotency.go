package repository

import (
	"context"
	"time"

	"ticketgo/internal/infra"
	"ticketgo/internal/infra/db"
	"ticketgo/internal/usecase/shared"

	"github.com/google/uuid"
)

// IdempotencyRepository stores reservation idempotency keys. Anonymous
// callers share the zero owner UUID; the (key, owner) pair is the
// uniqueness scope.
type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(dbtx db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: dbtx}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, ownerID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	const query = `
		INSERT INTO idempotency_keys (key, owner_id, endpoint, request_hash, status, expires_at)
		VALUES ($1, $2, $3, $4, 'processing', $5)
		ON CONFLICT (key, owner_id) DO NOTHING`

	tag, err := r.db.Exec(ctx, query, key, ownerID, endpoint, requestHash, expiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert idempotency key", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, key, ownerID uuid.UUID) (*shared.IdempotencyRecord, error) {
	const query = `
		SELECT key, owner_id, status, request_hash, result_booking_id, expires_at
		FROM idempotency_keys
		WHERE key = $1 AND owner_id = $2`

	var rec shared.IdempotencyRecord
	err := r.db.QueryRow(ctx, query, key, ownerID).Scan(
		&rec.Key, &rec.OwnerID, &rec.Status, &rec.RequestHash, &rec.ResultBookingID, &rec.ExpiresAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	return &rec, nil
}

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, key, ownerID uuid.UUID, resultBookingID uuid.UUID) error {
	const query = `
		UPDATE idempotency_keys
		SET status = 'completed', result_booking_id = $3, updated_at = now()
		WHERE key = $1 AND owner_id = $2`

	if _, err := r.db.Exec(ctx, query, key, ownerID, resultBookingID); err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}

	return nil
}

// Delete drops a processing claim so the key can be reused after a
// rejected reservation. Completed records are kept for replay.
func (r *IdempotencyRepository) Delete(ctx context.Context, key, ownerID uuid.UUID) error {
	const query = `
		DELETE FROM idempotency_keys
		WHERE key = $1 AND owner_id = $2 AND status = 'processing'`

	if _, err := r.db.Exec(ctx, query, key, ownerID); err != nil {
		return infra.WrapRepoErr("failed to delete idempotency key", err)
	}

	return nil
}
