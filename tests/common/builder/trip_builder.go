//go:build unit || e2e

package builder

import (
	"time"

	"ticketgo/internal/domain/trip"
	reqdto "ticketgo/internal/handler/dto/request"
)

type TripBuilder struct {
	Kind        string
	Name        string
	Code        string
	FromCity    string
	ToCity      string
	DepartureAt time.Time
	ArrivalAt   time.Time
	PriceCents  int64
	TotalSeats  int
}

func NewTripBuilder() *TripBuilder {
	departure := time.Now().Add(72 * time.Hour).Truncate(time.Minute)
	return &TripBuilder{
		Kind:        "bus",
		Name:        "Harare Express",
		Code:        "HRE-BYO-001",
		FromCity:    "Harare",
		ToCity:      "Bulawayo",
		DepartureAt: departure,
		ArrivalAt:   departure.Add(6 * time.Hour),
		PriceCents:  2500,
		TotalSeats:  40,
	}
}

func (b *TripBuilder) WithKind(kind string) *TripBuilder {
	b.Kind = kind
	return b
}

func (b *TripBuilder) WithName(name string) *TripBuilder {
	b.Name = name
	return b
}

func (b *TripBuilder) WithTotalSeats(n int) *TripBuilder {
	b.TotalSeats = n
	return b
}

func (b *TripBuilder) WithPriceCents(cents int64) *TripBuilder {
	b.PriceCents = cents
	return b
}

func (b *TripBuilder) WithSchedule(departure, arrival time.Time) *TripBuilder {
	b.DepartureAt = departure
	b.ArrivalAt = arrival
	return b
}

func (b *TripBuilder) BuildDomain() (*trip.Trip, error) {
	kind, err := trip.NewKind(b.Kind)
	if err != nil {
		return nil, err
	}
	return trip.NewTrip(
		kind,
		b.Name, b.Code, b.FromCity, b.ToCity,
		b.DepartureAt, b.ArrivalAt,
		b.PriceCents,
		b.TotalSeats,
	)
}

func (b *TripBuilder) BuildDTO() reqdto.CreateTripRequest {
	return reqdto.CreateTripRequest{
		Kind:        b.Kind,
		Name:        b.Name,
		Code:        b.Code,
		FromCity:    b.FromCity,
		ToCity:      b.ToCity,
		DepartureAt: b.DepartureAt,
		ArrivalAt:   b.ArrivalAt,
		PriceCents:  b.PriceCents,
		TotalSeats:  b.TotalSeats,
	}
}
