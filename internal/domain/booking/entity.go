package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrInvalidStatus    = errors.New("invalid booking status")
	ErrEmptyReference   = errors.New("booking reference cannot be empty")
)

// Booking is one ledger entry. It owns exactly one seat while confirmed
// and releases it on cancellation. Passenger and trip fields never
// change after creation; only the status transitions.
type Booking struct {
	id            uuid.UUID
	reference     string
	tripID        uuid.UUID
	seatID        uuid.UUID
	userID        *uuid.UUID
	passenger     Passenger
	travelDate    time.Time
	paymentMethod PaymentMethod
	paymentStatus PaymentStatus
	status        Status
	totalAmount   Money
	createdAt     time.Time
	updatedAt     time.Time
}

func newBooking(
	reference string,
	tripID, seatID uuid.UUID,
	userID *uuid.UUID,
	passenger Passenger,
	travelDate time.Time,
	paymentMethod PaymentMethod,
	totalAmount Money,
) (*Booking, error) {
	if reference == "" {
		return nil, ErrEmptyReference
	}
	return &Booking{
		id:            uuid.New(),
		reference:     reference,
		tripID:        tripID,
		seatID:        seatID,
		userID:        userID,
		passenger:     passenger,
		travelDate:    travelDate,
		paymentMethod: paymentMethod,
		paymentStatus: PaymentStatusCompleted,
		status:        StatusConfirmed,
		totalAmount:   totalAmount,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	reference string,
	tripID, seatID uuid.UUID,
	userID *uuid.UUID,
	passenger Passenger,
	travelDate time.Time,
	paymentMethod PaymentMethod,
	paymentStatus PaymentStatus,
	status Status,
	totalAmount Money,
	createdAt, updatedAt time.Time,
) (*Booking, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Booking{
		id:            id,
		reference:     reference,
		tripID:        tripID,
		seatID:        seatID,
		userID:        userID,
		passenger:     passenger,
		travelDate:    travelDate,
		paymentMethod: paymentMethod,
		paymentStatus: paymentStatus,
		status:        status,
		totalAmount:   totalAmount,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) Reference() string            { return b.reference }
func (b *Booking) TripID() uuid.UUID            { return b.tripID }
func (b *Booking) SeatID() uuid.UUID            { return b.seatID }
func (b *Booking) UserID() *uuid.UUID           { return b.userID }
func (b *Booking) Passenger() Passenger         { return b.passenger }
func (b *Booking) TravelDate() time.Time        { return b.travelDate }
func (b *Booking) PaymentMethod() PaymentMethod { return b.paymentMethod }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) TotalAmount() Money           { return b.totalAmount }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }

func (b *Booking) IsConfirmed() bool {
	return b.status == StatusConfirmed
}

func (b *Booking) IsCancelled() bool {
	return b.status == StatusCancelled
}

// Cancel transitions the ledger entry to cancelled and flips the payment
// label to refunded. The seat release happens in the same transaction at
// the storage layer.
func (b *Booking) Cancel() error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	b.status = StatusCancelled
	b.paymentStatus = PaymentStatusRefunded
	return nil
}
