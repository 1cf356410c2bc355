package commands

import (
	"context"

	reqdto "ticketgo/internal/handler/dto/request"
	"ticketgo/internal/infra"
	"ticketgo/internal/pkg/errs"
	"ticketgo/internal/usecase/queries"
	"ticketgo/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidTrip      = errs.New("invalid trip")
	ErrDuplicateTrip    = errs.New("trip code already exists")
	ErrTripCreateFailed = errs.New("trip creation failed")
)

type TripCommands interface {
	CreateTrip(ctx context.Context, req reqdto.CreateTripRequest) (*queries.TripView, error)
}

type tripCommandsImpl struct {
	uow       shared.UnitOfWork
	readStore queries.TripReadStore
}

func NewTripCommands(uow shared.UnitOfWork, readStore queries.TripReadStore) TripCommands {
	return &tripCommandsImpl{uow: uow, readStore: readStore}
}

// CreateTrip persists the trip and materializes its full seat map in one
// transaction. A trip is never visible without its seats.
func (t *tripCommandsImpl) CreateTrip(ctx context.Context, req reqdto.CreateTripRequest) (*queries.TripView, error) {
	entity, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTrip)
	}

	var tripID uuid.UUID
	err = t.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Trips().Create(ctx, entity); err != nil {
			return err
		}
		if err := tx.Seats().CreateBatch(ctx, entity.ID(), entity.SeatNumbers()); err != nil {
			return err
		}
		tripID = entity.ID()
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrDuplicateTrip
		}
		return nil, errs.Mark(err, ErrTripCreateFailed)
	}

	view, err := t.readStore.FindByID(ctx, tripID)
	if err != nil {
		return nil, errs.Mark(err, ErrTripCreateFailed)
	}
	return view, nil
}
