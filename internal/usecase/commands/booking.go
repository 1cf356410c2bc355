package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"ticketgo/internal/domain/booking"
	"ticketgo/internal/domain/seat"
	"ticketgo/internal/domain/user"
	reqdto "ticketgo/internal/handler/dto/request"
	"ticketgo/internal/infra"
	"ticketgo/internal/pkg/clock"
	"ticketgo/internal/pkg/config"
	"ticketgo/internal/pkg/errs"
	"ticketgo/internal/usecase/queries"
	"ticketgo/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrTripNotFound            = errs.New("trip not found")
	ErrSeatNotFound            = errs.New("seat not found")
	ErrSeatUnavailable         = errs.New("seat already booked")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrBookingAccessDenied     = errs.New("booking access denied")
	ErrBookingNotCancellable   = errs.New("booking is not cancellable")
	ErrInvalidBookingRequest   = errs.New("invalid booking request")
	ErrDuplicateBooking        = errs.New("duplicate booking request")
	ErrIdempotencyInProgress   = errs.New("idempotency in progress")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrReferenceExhausted      = errs.New("could not allocate a unique booking reference")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, userID *uuid.UUID, idempotencyKey uuid.UUID) (*CreateBookingResult, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID, actorRole user.Role) error
}

type bookingCommandsImpl struct {
	uow       shared.UnitOfWork
	factory   *booking.Factory
	readStore queries.BookingReadStore
	clock     clock.Clock
	cfg       config.BookingConfig
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	factory *booking.Factory,
	readStore queries.BookingReadStore,
	clk clock.Clock,
	cfg config.BookingConfig,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:       uow,
		factory:   factory,
		readStore: readStore,
		clock:     clk,
		cfg:       cfg,
	}
}

// CreateBooking runs the whole reservation: idempotency gate, seat
// claim, ledger write and idempotency completion. The claim and the
// ledger insert share one transaction, so a failed insert rolls the
// seat back to available.
func (c *bookingCommandsImpl) CreateBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	userID *uuid.UUID,
	idempotencyKey uuid.UUID,
) (*CreateBookingResult, error) {
	ownerID := uuid.Nil
	if userID != nil {
		ownerID = *userID
	}

	claimedKey := false
	if idempotencyKey != uuid.Nil {
		requestHash := calculateRequestHash(req)
		replayed, err := c.handleIdempotency(ctx, idempotencyKey, ownerID, requestHash)
		if err != nil {
			return nil, err
		}
		if replayed != nil {
			return &CreateBookingResult{Booking: replayed, IsReplayed: true}, nil
		}
		claimedKey = true
	}

	view, err := c.createNewBooking(ctx, req, userID, ownerID, idempotencyKey)
	if err != nil {
		// A rejected reservation must not poison the key; the caller may
		// retry the same key with a valid request.
		if claimedKey {
			c.releaseIdempotencyKey(ctx, idempotencyKey, ownerID)
		}
		return nil, err
	}
	return &CreateBookingResult{Booking: view, IsReplayed: false}, nil
}

func (c *bookingCommandsImpl) releaseIdempotencyKey(ctx context.Context, key, ownerID uuid.UUID) {
	err := c.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Delete(ctx, key, ownerID)
	})
	if err != nil {
		slog.Warn("failed to release idempotency key", "key", key, "error", err.Error())
	}
}

// handleIdempotency claims the (key, owner) slot with an insert-if-absent.
// A won insert means this request owns the key and proceeds to reserve.
// Otherwise a completed record replays the stored booking, and a
// processing record with the same hash means a concurrent retry is still
// running.
func (c *bookingCommandsImpl) handleIdempotency(
	ctx context.Context,
	key, ownerID uuid.UUID,
	requestHash string,
) (*queries.BookingView, error) {
	expiresAt := c.clock.Now().Add(24 * time.Hour)

	var (
		inserted bool
		record   *shared.IdempotencyRecord
	)
	err := c.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		won, err := tx.Idempotency().TryInsert(ctx, key, ownerID, "POST /bookings", requestHash, expiresAt)
		if err != nil {
			return err
		}
		inserted = won
		if inserted {
			return nil
		}
		existing, err := tx.Idempotency().Get(ctx, key, ownerID)
		if err != nil {
			return err
		}
		record = existing
		return nil
	})
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	if inserted {
		return nil, nil
	}

	switch record.Status {
	case shared.IdempotencyStatusCompleted:
		if record.ResultBookingID == nil {
			return nil, errs.New("completed request missing result booking ID")
		}
		view, err := c.readStore.FindByID(ctx, *record.ResultBookingID)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return view, nil

	case shared.IdempotencyStatusProcessing:
		if record.RequestHash != requestHash {
			return nil, ErrDuplicateBooking
		}
		return nil, ErrIdempotencyInProgress

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (c *bookingCommandsImpl) createNewBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	userID *uuid.UUID,
	ownerID, idempotencyKey uuid.UUID,
) (*queries.BookingView, error) {
	passenger, err := req.ToPassenger()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingRequest)
	}
	paymentMethod, err := req.ToPaymentMethod()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingRequest)
	}

	// Retried whole because a unique-violation on the reference aborts
	// the surrounding pg transaction; a savepoint would not survive it.
	maxAttempts := c.cfg.ReferenceMaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var (
		entity  *booking.Booking
		lastErr error
	)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if entity != nil {
			c.factory.Rereference(entity)
		}
		entity, lastErr = c.reserveOnce(ctx, req, userID, ownerID, idempotencyKey, passenger, paymentMethod, entity)
		if lastErr == nil {
			break
		}
		if !infra.IsKind(lastErr, infra.KindDuplicateKey) {
			return nil, lastErr
		}
	}
	if lastErr != nil {
		return nil, errs.Mark(lastErr, ErrReferenceExhausted)
	}

	view, err := c.readStore.FindByID(ctx, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// reserveOnce is a single claim-and-record attempt in one transaction.
// It returns the booking it tried to insert so a reference collision can
// be retried on the same entity with a fresh reference.
func (c *bookingCommandsImpl) reserveOnce(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	userID *uuid.UUID,
	ownerID, idempotencyKey uuid.UUID,
	passenger booking.Passenger,
	paymentMethod booking.PaymentMethod,
	entity *booking.Booking,
) (*booking.Booking, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		seatSnap, err := tx.Seats().FindForClaim(ctx, req.SeatID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrSeatNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if seatSnap.TripID != req.TripID {
			return ErrSeatNotFound
		}
		if seatSnap.Status != seat.StatusAvailable {
			return ErrSeatUnavailable
		}

		if entity == nil {
			tripSnap, err := tx.Trips().FindSpec(ctx, req.TripID)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return ErrTripNotFound
				}
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}

			built, err := c.factory.CreateBooking(
				booking.TripSpec{
					ID:         tripSnap.ID,
					PriceCents: tripSnap.PriceCents,
					TravelDate: tripSnap.Departure,
				},
				req.SeatID,
				userID,
				passenger,
				paymentMethod,
			)
			if err != nil {
				return errs.Mark(err, ErrInvalidBookingRequest)
			}
			entity = built
		}

		result, err := tx.Seats().TryClaim(ctx, req.SeatID, seatSnap.Version)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		switch result {
		case seat.ClaimConflict:
			return ErrSeatUnavailable
		case seat.ClaimNotFound:
			return ErrSeatNotFound
		}

		if err := tx.Bookings().Create(ctx, entity); err != nil {
			// A duplicate key here is a reference collision; the caller
			// retries the whole transaction with a fresh reference.
			return err
		}

		if idempotencyKey != uuid.Nil {
			if err := tx.Idempotency().MarkCompleted(ctx, idempotencyKey, ownerID, entity.ID()); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		return nil
	})
	return entity, err
}

// CancelBooking flips the ledger entry to cancelled and releases the
// seat in the same transaction, so cancel-then-rebook always finds the
// seat available again.
func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID, actorRole user.Role) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if actorRole != user.RoleAdmin {
			if snap.UserID == nil || *snap.UserID != actorID {
				return ErrBookingAccessDenied
			}
		}

		if err := tx.Bookings().MarkCancelled(ctx, bookingID); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrBookingNotCancellable
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := tx.Seats().Release(ctx, snap.SeatID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		return nil
	})
}

func calculateRequestHash(req reqdto.CreateBookingRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
