package request

import (
	"time"

	"ticketgo/internal/domain/trip"
)

type CreateTripRequest struct {
	Kind        string    `json:"kind" binding:"required,oneof=bus flight event"`
	Name        string    `json:"name" binding:"required"`
	Code        string    `json:"code" binding:"required"`
	FromCity    string    `json:"from_city" binding:"required"`
	ToCity      string    `json:"to_city" binding:"required"`
	DepartureAt time.Time `json:"departure_at" binding:"required"`
	ArrivalAt   time.Time `json:"arrival_at" binding:"required"`
	PriceCents  int64     `json:"price_cents" binding:"min=0"`
	TotalSeats  int       `json:"total_seats" binding:"required,min=1,max=1000"`
}

func (r CreateTripRequest) ToDomain() (*trip.Trip, error) {
	kind, err := trip.NewKind(r.Kind)
	if err != nil {
		return nil, err
	}

	return trip.NewTrip(
		kind,
		r.Name, r.Code, r.FromCity, r.ToCity,
		r.DepartureAt, r.ArrivalAt,
		r.PriceCents,
		r.TotalSeats,
	)
}
