package repository

import (
	"context"

	"ticketgo/internal/domain/seat"
	"ticketgo/internal/infra"
	"ticketgo/internal/infra/db"
	"ticketgo/internal/usecase/shared"

	"github.com/google/uuid"
)

// SeatRepository is the Postgres inventory store. The claim is a single
// conditional UPDATE on (status, version); no in-process lock is held
// across the database call. The trip's available-seat counter moves in
// the same transaction as the seat row, so no reader ever observes the
// two out of sync.
type SeatRepository struct {
	db db.DBTX
}

func NewSeatRepository(dbtx db.DBTX) *SeatRepository {
	return &SeatRepository{db: dbtx}
}

func (r *SeatRepository) CreateBatch(ctx context.Context, tripID uuid.UUID, seatNumbers []string) error {
	const query = `
		INSERT INTO seats (id, trip_id, seat_number, status, version)
		VALUES ($1, $2, $3, 'available', 1)`

	for _, number := range seatNumbers {
		if _, err := r.db.Exec(ctx, query, uuid.New(), tripID, number); err != nil {
			return infra.WrapRepoErr("failed to create seat", err)
		}
	}
	return nil
}

func (r *SeatRepository) FindForClaim(ctx context.Context, seatID uuid.UUID) (*shared.SeatSnapshot, error) {
	const query = `
		SELECT id, trip_id, seat_number, status, version
		FROM seats
		WHERE id = $1`

	var snap shared.SeatSnapshot
	var status string
	err := r.db.QueryRow(ctx, query, seatID).Scan(
		&snap.ID, &snap.TripID, &snap.SeatNumber, &status, &snap.Version,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("seat not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find seat", err)
	}
	snap.Status = seat.Status(status)

	return &snap, nil
}

func (r *SeatRepository) TryClaim(ctx context.Context, seatID uuid.UUID, expectedVersion int32) (seat.ClaimResult, error) {
	const claim = `
		UPDATE seats
		SET status = 'booked', version = version + 1
		WHERE id = $1 AND version = $2 AND status = 'available'`

	tag, err := r.db.Exec(ctx, claim, seatID, expectedVersion)
	if err != nil {
		return seat.ClaimConflict, infra.WrapRepoErr("failed to claim seat", err)
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM seats WHERE id = $1)`, seatID).Scan(&exists)
		if err != nil {
			return seat.ClaimConflict, infra.WrapRepoErr("failed to check seat existence", err)
		}
		if !exists {
			return seat.ClaimNotFound, nil
		}
		return seat.ClaimConflict, nil
	}

	const decrement = `
		UPDATE trips
		SET available_seats = available_seats - 1
		WHERE id = (SELECT trip_id FROM seats WHERE id = $1) AND available_seats > 0`

	tag, err = r.db.Exec(ctx, decrement, seatID)
	if err != nil {
		return seat.ClaimConflict, infra.WrapRepoErr("failed to decrement available seats", err)
	}
	if tag.RowsAffected() == 0 {
		// Counter and seat rows disagree; abort the transaction rather
		// than commit an inconsistent claim.
		return seat.ClaimConflict, infra.WrapRepoErr("available seat count underflow", nil, infra.KindConflict)
	}

	return seat.ClaimOK, nil
}

func (r *SeatRepository) Release(ctx context.Context, seatID uuid.UUID) error {
	const release = `
		UPDATE seats
		SET status = 'available', version = version + 1
		WHERE id = $1 AND status = 'booked'`

	tag, err := r.db.Exec(ctx, release, seatID)
	if err != nil {
		return infra.WrapRepoErr("failed to release seat", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("seat is not booked", nil, infra.KindConflict)
	}

	const increment = `
		UPDATE trips
		SET available_seats = available_seats + 1
		WHERE id = (SELECT trip_id FROM seats WHERE id = $1) AND available_seats < total_seats`

	tag, err = r.db.Exec(ctx, increment, seatID)
	if err != nil {
		return infra.WrapRepoErr("failed to increment available seats", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("available seat count overflow", nil, infra.KindConflict)
	}

	return nil
}
