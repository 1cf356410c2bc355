package trip

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidKind       = errors.New("invalid trip kind")
	ErrEmptyTripName     = errors.New("trip name cannot be empty")
	ErrTripNameTooLong   = errors.New("trip name is too long (max 255 characters)")
	ErrEmptyCity         = errors.New("origin and destination cannot be empty")
	ErrInvalidCapacity   = errors.New("capacity must be between 1 and 1000")
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrInvalidSchedule   = errors.New("departure must be before arrival")
	ErrSoldOut           = errors.New("trip is sold out")
	ErrNegativeAvailable = errors.New("available seat count cannot go negative")
)

const (
	MaxTripNameLength = 255
	MaxCapacity       = 1000
)

// Trip is a single bookable resource: one bus run, one flight leg or one
// event instance. Everything except the available-seat counter is
// immutable after creation; the counter is only adjusted by the
// inventory store inside the same transaction as a seat transition.
type Trip struct {
	id             uuid.UUID
	kind           Kind
	name           string
	code           string
	fromCity       string
	toCity         string
	departure      time.Time
	arrival        time.Time
	priceCents     int64
	totalSeats     int
	availableSeats int
	createdAt      time.Time
}

func NewTrip(
	kind Kind,
	name, code, fromCity, toCity string,
	departure, arrival time.Time,
	priceCents int64,
	totalSeats int,
) (*Trip, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyTripName
	}
	if len(name) > MaxTripNameLength {
		return nil, ErrTripNameTooLong
	}
	if strings.TrimSpace(fromCity) == "" || strings.TrimSpace(toCity) == "" {
		return nil, ErrEmptyCity
	}
	if totalSeats < 1 || totalSeats > MaxCapacity {
		return nil, ErrInvalidCapacity
	}
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}
	if !departure.Before(arrival) {
		return nil, ErrInvalidSchedule
	}

	return &Trip{
		id:             uuid.New(),
		kind:           kind,
		name:           name,
		code:           strings.TrimSpace(code),
		fromCity:       strings.TrimSpace(fromCity),
		toCity:         strings.TrimSpace(toCity),
		departure:      departure,
		arrival:        arrival,
		priceCents:     priceCents,
		totalSeats:     totalSeats,
		availableSeats: totalSeats,
	}, nil
}

func (t *Trip) ID() uuid.UUID        { return t.id }
func (t *Trip) Kind() Kind           { return t.kind }
func (t *Trip) Name() string         { return t.name }
func (t *Trip) Code() string         { return t.code }
func (t *Trip) FromCity() string     { return t.fromCity }
func (t *Trip) ToCity() string       { return t.toCity }
func (t *Trip) Departure() time.Time { return t.departure }
func (t *Trip) Arrival() time.Time   { return t.arrival }
func (t *Trip) PriceCents() int64    { return t.priceCents }
func (t *Trip) TotalSeats() int      { return t.totalSeats }
func (t *Trip) AvailableSeats() int  { return t.availableSeats }
func (t *Trip) CreatedAt() time.Time { return t.createdAt }

// SeatNumbers lays the cabin out four seats per row: 1A..1D, 2A..2D, ...
// Event tickets get the same treatment; the label is just an admission
// slot identifier there.
func (t *Trip) SeatNumbers() []string {
	const seatsPerRow = 4
	numbers := make([]string, 0, t.totalSeats)
	for i := 0; i < t.totalSeats; i++ {
		row := i/seatsPerRow + 1
		col := rune('A' + i%seatsPerRow)
		numbers = append(numbers, fmt.Sprintf("%d%c", row, col))
	}
	return numbers
}
