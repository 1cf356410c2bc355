package readstore

import (
	"context"

	"ticketgo/internal/infra"
	"ticketgo/internal/infra/db"
	"ticketgo/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookingViewColumns = `
	b.id, b.reference, b.trip_id, t.name, t.code, t.from_city, t.to_city, t.departure_at,
	b.seat_id, s.seat_number, b.user_id,
	b.passenger_name, b.passenger_id_number, b.passenger_phone,
	b.next_of_kin_name, b.next_of_kin_phone,
	b.payment_method, b.payment_status, b.total_amount_cents, b.status,
	b.created_at, b.updated_at`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	const query = `
		SELECT ` + bookingViewColumns + `
		FROM bookings b
		JOIN trips t ON t.id = b.trip_id
		JOIN seats s ON s.id = b.seat_id
		WHERE b.id = $1`

	view, err := scanBookingView(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	return view, nil
}

func (r *BookingReadStore) FindByReference(ctx context.Context, reference string) (*queries.BookingView, error) {
	const query = `
		SELECT ` + bookingViewColumns + `
		FROM bookings b
		JOIN trips t ON t.id = b.trip_id
		JOIN seats s ON s.id = b.seat_id
		WHERE b.reference = $1`

	view, err := scanBookingView(r.db.QueryRow(ctx, query, reference))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by reference", err)
	}

	return view, nil
}

func (r *BookingReadStore) FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	const query = `
		SELECT b.id, b.reference, t.name, t.from_city, t.to_city, t.departure_at,
		       s.seat_number, b.total_amount_cents, b.status, b.created_at
		FROM bookings b
		JOIN trips t ON t.id = b.trip_id
		JOIN seats s ON s.id = b.seat_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by user", err)
	}
	defer rows.Close()

	var result []*queries.BookingListItem
	for rows.Next() {
		item := &queries.BookingListItem{}
		err := rows.Scan(
			&item.ID, &item.Reference, &item.TripName, &item.FromCity, &item.ToCity,
			&item.DepartureAt, &item.SeatNumber, &item.AmountCents, &item.Status, &item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}

	return result, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	view := &queries.BookingView{}
	err := row.Scan(
		&view.ID, &view.Reference, &view.TripID, &view.TripName, &view.TripCode,
		&view.FromCity, &view.ToCity, &view.DepartureAt,
		&view.SeatID, &view.SeatNumber, &view.UserID,
		&view.PassengerFullName, &view.PassengerIDNumber, &view.PassengerPhone,
		&view.NextOfKinName, &view.NextOfKinPhone,
		&view.PaymentMethod, &view.PaymentStatus, &view.AmountCents, &view.Status,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return view, nil
}
