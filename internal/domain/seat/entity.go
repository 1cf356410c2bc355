package seat

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptySeatNumber = errors.New("seat number cannot be empty")
	ErrInvalidStatus   = errors.New("invalid seat status")
	ErrNotAvailable    = errors.New("seat is not available")
	ErrNotBooked       = errors.New("seat is not booked")
)

// Seat is a single inventory unit. Its status and version are only ever
// mutated through the inventory store's claim/release operations; the
// version column backs the compare-and-set that prevents double booking.
type Seat struct {
	id         uuid.UUID
	tripID     uuid.UUID
	seatNumber string
	status     Status
	version    int32
	createdAt  time.Time
}

func NewSeat(tripID uuid.UUID, seatNumber string) (*Seat, error) {
	if seatNumber == "" {
		return nil, ErrEmptySeatNumber
	}
	return &Seat{
		id:         uuid.New(),
		tripID:     tripID,
		seatNumber: seatNumber,
		status:     StatusAvailable,
		version:    1,
	}, nil
}

func Reconstruct(id, tripID uuid.UUID, seatNumber string, status Status, version int32, createdAt time.Time) (*Seat, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Seat{
		id:         id,
		tripID:     tripID,
		seatNumber: seatNumber,
		status:     status,
		version:    version,
		createdAt:  createdAt,
	}, nil
}

func (s *Seat) ID() uuid.UUID        { return s.id }
func (s *Seat) TripID() uuid.UUID    { return s.tripID }
func (s *Seat) SeatNumber() string   { return s.seatNumber }
func (s *Seat) Status() Status       { return s.status }
func (s *Seat) Version() int32       { return s.version }
func (s *Seat) CreatedAt() time.Time { return s.createdAt }

func (s *Seat) IsAvailable() bool {
	return s.status == StatusAvailable
}

// Claim transitions Available -> Booked, bumping the version. The
// in-memory transition mirrors the storage-level compare-and-set and is
// used by tests and by the in-memory store.
func (s *Seat) Claim(expectedVersion int32) ClaimResult {
	if s.version != expectedVersion || s.status != StatusAvailable {
		return ClaimConflict
	}
	s.status = StatusBooked
	s.version++
	return ClaimOK
}

// Release transitions Booked -> Available, bumping the version. Only the
// owning booking's cancellation path may call it.
func (s *Seat) Release() error {
	if s.status != StatusBooked {
		return ErrNotBooked
	}
	s.status = StatusAvailable
	s.version++
	return nil
}
