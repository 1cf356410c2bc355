package readstore

import (
	"context"
	"fmt"
	"strings"

	"ticketgo/internal/infra"
	"ticketgo/internal/infra/db"
	"ticketgo/internal/usecase/queries"

	"github.com/google/uuid"
)

const tripViewColumns = `
	id, kind, name, code, from_city, to_city, departure_at, arrival_at,
	price_cents, total_seats, available_seats, created_at, updated_at`

type TripReadStore struct {
	db db.DBTX
}

func NewTripReadStore(dbtx db.DBTX) *TripReadStore {
	return &TripReadStore{db: dbtx}
}

func (r *TripReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.TripView, error) {
	const query = `SELECT ` + tripViewColumns + ` FROM trips WHERE id = $1`

	view := &queries.TripView{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.Kind, &view.Name, &view.Code, &view.FromCity, &view.ToCity,
		&view.DepartureAt, &view.ArrivalAt, &view.PriceCents,
		&view.TotalSeats, &view.AvailableSeats, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("trip not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find trip by ID", err)
	}

	return view, nil
}

func (r *TripReadStore) Search(ctx context.Context, filter queries.TripSearchFilter, limit int32) ([]*queries.TripView, error) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.FromCity != nil {
		add("from_city ILIKE $%d", "%"+*filter.FromCity+"%")
	}
	if filter.ToCity != nil {
		add("to_city ILIKE $%d", "%"+*filter.ToCity+"%")
	}
	if filter.Kind != nil {
		add("kind = $%d", *filter.Kind)
	}
	if filter.DepartsAfter != nil {
		add("departure_at >= $%d", *filter.DepartsAfter)
	}
	if filter.DepartsBefore != nil {
		add("departure_at <= $%d", *filter.DepartsBefore)
	}
	if filter.OnlyAvailable {
		conds = append(conds, "available_seats > 0")
	}

	query := `SELECT ` + tripViewColumns + ` FROM trips`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY departure_at ASC LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search trips", err)
	}
	defer rows.Close()

	var result []*queries.TripView
	for rows.Next() {
		view := &queries.TripView{}
		err := rows.Scan(
			&view.ID, &view.Kind, &view.Name, &view.Code, &view.FromCity, &view.ToCity,
			&view.DepartureAt, &view.ArrivalAt, &view.PriceCents,
			&view.TotalSeats, &view.AvailableSeats, &view.CreatedAt, &view.UpdatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan trip row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate trip rows", err)
	}

	return result, nil
}

func (r *TripReadStore) FindSeatsByTripID(ctx context.Context, tripID uuid.UUID) ([]*queries.SeatView, error) {
	// Seat numbers are a row number plus a letter, so plain text order
	// would put 10A before 2A. Sorting by length first restores row order.
	const query = `
		SELECT id, trip_id, seat_number, status
		FROM seats
		WHERE trip_id = $1
		ORDER BY length(seat_number) ASC, seat_number ASC`

	rows, err := r.db.Query(ctx, query, tripID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list seats", err)
	}
	defer rows.Close()

	var result []*queries.SeatView
	for rows.Next() {
		view := &queries.SeatView{}
		if err := rows.Scan(&view.ID, &view.TripID, &view.SeatNumber, &view.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan seat row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate seat rows", err)
	}

	return result, nil
}
