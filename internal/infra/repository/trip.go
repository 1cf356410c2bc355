package repository

import (
	"context"

	"ticketgo/internal/domain/trip"
	"ticketgo/internal/infra"
	"ticketgo/internal/infra/db"
	"ticketgo/internal/usecase/shared"

	"github.com/google/uuid"
)

type TripRepository struct {
	db db.DBTX
}

func NewTripRepository(dbtx db.DBTX) *TripRepository {
	return &TripRepository{db: dbtx}
}

func (r *TripRepository) Create(ctx context.Context, t *trip.Trip) error {
	const query = `
		INSERT INTO trips (
			id, kind, name, code, from_city, to_city,
			departure_at, arrival_at, price_cents, total_seats, available_seats
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		t.ID(), t.Kind().String(), t.Name(), t.Code(), t.FromCity(), t.ToCity(),
		t.Departure(), t.Arrival(), t.PriceCents(), t.TotalSeats(), t.AvailableSeats(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create trip", err)
	}

	return nil
}

func (r *TripRepository) FindSpec(ctx context.Context, id uuid.UUID) (*shared.TripSnapshot, error) {
	const query = `
		SELECT id, kind, name, price_cents, departure_at, total_seats, available_seats
		FROM trips
		WHERE id = $1`

	var snap shared.TripSnapshot
	var kind string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &kind, &snap.Name, &snap.PriceCents,
		&snap.Departure, &snap.TotalSeats, &snap.AvailableSeats,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("trip not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find trip", err)
	}
	snap.Kind = trip.Kind(kind)

	return &snap, nil
}
