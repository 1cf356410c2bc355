package queries

import (
	"context"
	"time"

	"ticketgo/internal/infra"
	"ticketgo/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrTripNotFound = errs.New("trip not found")

type TripSearchFilter struct {
	FromCity      *string
	ToCity        *string
	Kind          *string
	DepartsAfter  *time.Time
	DepartsBefore *time.Time
	OnlyAvailable bool
}

type TripQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*TripView, error)
	Search(ctx context.Context, filter TripSearchFilter, limit int) ([]*TripView, error)
	ListSeats(ctx context.Context, tripID uuid.UUID) ([]*SeatView, error)
}

type TripReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TripView, error)
	Search(ctx context.Context, filter TripSearchFilter, limit int32) ([]*TripView, error)
	FindSeatsByTripID(ctx context.Context, tripID uuid.UUID) ([]*SeatView, error)
}

type tripQueriesImpl struct {
	readStore TripReadStore
}

func NewTripQueries(readStore TripReadStore) TripQueries {
	return &tripQueriesImpl{readStore: readStore}
}

func (q *tripQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*TripView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *tripQueriesImpl) Search(ctx context.Context, filter TripSearchFilter, limit int) ([]*TripView, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return q.readStore.Search(ctx, filter, int32(limit))
}

func (q *tripQueriesImpl) ListSeats(ctx context.Context, tripID uuid.UUID) ([]*SeatView, error) {
	if _, err := q.GetByID(ctx, tripID); err != nil {
		return nil, err
	}
	return q.readStore.FindSeatsByTripID(ctx, tripID)
}
