package response

import (
	"time"

	"ticketgo/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type TripResponse struct {
	ID             uuid.UUID `json:"id"`
	Kind           string    `json:"kind"`
	Name           string    `json:"name"`
	Code           string    `json:"code"`
	FromCity       string    `json:"fromCity"`
	ToCity         string    `json:"toCity"`
	DepartureAt    time.Time `json:"departureAt"`
	ArrivalAt      time.Time `json:"arrivalAt"`
	PriceCents     int64     `json:"priceCents"`
	TotalSeats     int32     `json:"totalSeats"`
	AvailableSeats int32     `json:"availableSeats"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type SeatResponse struct {
	ID         uuid.UUID `json:"id"`
	TripID     uuid.UUID `json:"tripId"`
	SeatNumber string    `json:"seatNumber"`
	Status     string    `json:"status"`
}

func FromTripView(rm *queries.TripView) *TripResponse {
	var resp TripResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromTripViews(rms []*queries.TripView) []*TripResponse {
	result := make([]*TripResponse, len(rms))
	for i, rm := range rms {
		result[i] = FromTripView(rm)
	}
	return result
}

func FromSeatViews(rms []*queries.SeatView) []*SeatResponse {
	result := make([]*SeatResponse, len(rms))
	for i, rm := range rms {
		item := &SeatResponse{}
		_ = copier.Copy(item, rm)
		result[i] = item
	}
	return result
}
