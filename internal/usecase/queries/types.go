package queries

import (
	"time"

	"github.com/google/uuid"
)

// TripView represents read-optimized trip data
type TripView struct {
	ID             uuid.UUID `json:"id"`
	Kind           string    `json:"kind"`
	Name           string    `json:"name"`
	Code           string    `json:"code"`
	FromCity       string    `json:"from_city"`
	ToCity         string    `json:"to_city"`
	DepartureAt    time.Time `json:"departure_at"`
	ArrivalAt      time.Time `json:"arrival_at"`
	PriceCents     int64     `json:"price_cents"`
	TotalSeats     int32     `json:"total_seats"`
	AvailableSeats int32     `json:"available_seats"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SeatView represents a single seat on the seat map
type SeatView struct {
	ID         uuid.UUID `json:"id"`
	TripID     uuid.UUID `json:"trip_id"`
	SeatNumber string    `json:"seat_number"`
	Status     string    `json:"status"`
}

// BookingView represents read-optimized booking data joined with its trip
type BookingView struct {
	ID                uuid.UUID  `json:"id"`
	Reference         string     `json:"reference"`
	TripID            uuid.UUID  `json:"trip_id"`
	TripName          string     `json:"trip_name"`
	TripCode          string     `json:"trip_code"`
	FromCity          string     `json:"from_city"`
	ToCity            string     `json:"to_city"`
	DepartureAt       time.Time  `json:"departure_at"`
	SeatID            uuid.UUID  `json:"seat_id"`
	SeatNumber        string     `json:"seat_number"`
	UserID            *uuid.UUID `json:"user_id,omitempty"`
	PassengerFullName string     `json:"passenger_full_name"`
	PassengerIDNumber string     `json:"passenger_id_number"`
	PassengerPhone    string     `json:"passenger_phone"`
	NextOfKinName     string     `json:"next_of_kin_name"`
	NextOfKinPhone    string     `json:"next_of_kin_phone"`
	PaymentMethod     string     `json:"payment_method"`
	PaymentStatus     string     `json:"payment_status"`
	AmountCents       int64      `json:"amount_cents"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID          uuid.UUID `json:"id"`
	Reference   string    `json:"reference"`
	TripName    string    `json:"trip_name"`
	FromCity    string    `json:"from_city"`
	ToCity      string    `json:"to_city"`
	DepartureAt time.Time `json:"departure_at"`
	SeatNumber  string    `json:"seat_number"`
	AmountCents int64     `json:"amount_cents"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	PhoneNumber string    `json:"phone_number"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
}
