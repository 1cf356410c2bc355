package repository

import (
	"context"

	"ticketgo/internal/domain/booking"
	"ticketgo/internal/infra"
	"ticketgo/internal/infra/db"
	"ticketgo/internal/usecase/shared"

	"github.com/google/uuid"
)

// BookingRepository is the write side of the ledger. Inserts only;
// MarkCancelled is the single permitted post-creation mutation.
type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	const query = `
		INSERT INTO bookings (
			id, reference, trip_id, seat_id, user_id,
			passenger_name, passenger_id_number, passenger_phone,
			next_of_kin_name, next_of_kin_phone,
			travel_date, payment_method, payment_status, status, total_amount_cents
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	passenger := b.Passenger()
	_, err := r.db.Exec(ctx, query,
		b.ID(), b.Reference(), b.TripID(), b.SeatID(), b.UserID(),
		passenger.Name(), passenger.IDNumber(), passenger.Phone(),
		passenger.NextOfKinName(), passenger.NextOfKinPhone(),
		b.TravelDate(), b.PaymentMethod().String(), b.PaymentStatus().String(),
		b.Status().String(), b.TotalAmount().Cents(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}

	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	const query = `
		SELECT id, reference, trip_id, seat_id, user_id, status
		FROM bookings
		WHERE id = $1`

	var snap shared.BookingSnapshot
	var status string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.Reference, &snap.TripID, &snap.SeatID, &snap.UserID, &status,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	snap.Status = booking.Status(status)

	return &snap, nil
}

func (r *BookingRepository) MarkCancelled(ctx context.Context, id uuid.UUID) error {
	const query = `
		UPDATE bookings
		SET status = 'cancelled', payment_status = 'refunded', updated_at = now()
		WHERE id = $1 AND status = 'confirmed'`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return infra.WrapRepoErr("failed to cancel booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking is not confirmed", nil, infra.KindConflict)
	}

	return nil
}
