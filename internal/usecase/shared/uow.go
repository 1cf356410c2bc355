package shared

import (
	"context"
	"time"

	"ticketgo/internal/domain/booking"
	"ticketgo/internal/domain/seat"
	"ticketgo/internal/domain/trip"
	"ticketgo/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures. The claim CAS and the ledger write share
	// one Within scope, so a failed ledger write can never leave a
	// claimed seat behind.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: single-statement operations using implicit transactions.
	WithDB(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Trips() TripRepository
	Seats() SeatRepository
	Bookings() BookingRepository
	Idempotency() IdempotencyRepository
	Users() UserRepository
}

// TripRepository is the write-side resource store. Trips are immutable
// after creation except for the available-seat counter, which only the
// seat claim/release paths touch.
type TripRepository interface {
	Create(ctx context.Context, t *trip.Trip) error
	FindSpec(ctx context.Context, id uuid.UUID) (*TripSnapshot, error)
}

// SeatRepository is the inventory store. TryClaim is the single atomic
// compare-and-set that decides every race: under concurrent calls for
// the same seat exactly one caller sees ClaimOK. Both TryClaim and
// Release adjust the trip's available-seat counter in the same
// transaction scope as the seat transition.
type SeatRepository interface {
	CreateBatch(ctx context.Context, tripID uuid.UUID, seatNumbers []string) error
	FindForClaim(ctx context.Context, seatID uuid.UUID) (*SeatSnapshot, error)
	TryClaim(ctx context.Context, seatID uuid.UUID, expectedVersion int32) (seat.ClaimResult, error)
	Release(ctx context.Context, seatID uuid.UUID) error
}

// BookingRepository is the append-only ledger. Bookings are never
// deleted; MarkCancelled is the only permitted mutation.
type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	MarkCancelled(ctx context.Context, id uuid.UUID) error
}

type IdempotencyRepository interface {
	// TryInsert claims the (key, owner) slot. It reports whether this
	// call created the record; false means another request holds it.
	TryInsert(ctx context.Context, key, ownerID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, key, ownerID uuid.UUID) (*IdempotencyRecord, error)
	MarkCompleted(ctx context.Context, key, ownerID uuid.UUID, resultBookingID uuid.UUID) error
	Delete(ctx context.Context, key, ownerID uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}
