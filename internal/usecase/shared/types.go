package shared

import (
	"time"

	"ticketgo/internal/domain/booking"
	"ticketgo/internal/domain/seat"
	"ticketgo/internal/domain/trip"

	"github.com/google/uuid"
)

// Minimal snapshots for command-side reads.

type TripSnapshot struct {
	ID             uuid.UUID
	Kind           trip.Kind
	Name           string
	PriceCents     int64
	Departure      time.Time
	TotalSeats     int32
	AvailableSeats int32
}

type SeatSnapshot struct {
	ID         uuid.UUID
	TripID     uuid.UUID
	SeatNumber string
	Status     seat.Status
	Version    int32
}

type BookingSnapshot struct {
	ID        uuid.UUID
	Reference string
	TripID    uuid.UUID
	SeatID    uuid.UUID
	UserID    *uuid.UUID
	Status    booking.Status
}

type IdempotencyRecord struct {
	Key             uuid.UUID
	OwnerID         uuid.UUID
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)
