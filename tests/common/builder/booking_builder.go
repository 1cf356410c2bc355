//go:build unit || e2e

package builder

import (
	reqdto "ticketgo/internal/handler/dto/request"

	"github.com/google/uuid"
)

type BookingRequestBuilder struct {
	TripID            uuid.UUID
	SeatID            uuid.UUID
	PassengerName     string
	PassengerIDNumber string
	PassengerPhone    string
	NextOfKinName     string
	NextOfKinPhone    string
	PaymentMethod     string
}

func NewBookingRequestBuilder() *BookingRequestBuilder {
	return &BookingRequestBuilder{
		TripID:            uuid.New(),
		SeatID:            uuid.New(),
		PassengerName:     "Tinashe Moyo",
		PassengerIDNumber: "63-123456A70",
		PassengerPhone:    "+263771234567",
		NextOfKinName:     "Rudo Moyo",
		NextOfKinPhone:    "+263772345678",
		PaymentMethod:     "ecocash",
	}
}

func (b *BookingRequestBuilder) WithTripID(id uuid.UUID) *BookingRequestBuilder {
	b.TripID = id
	return b
}

func (b *BookingRequestBuilder) WithSeatID(id uuid.UUID) *BookingRequestBuilder {
	b.SeatID = id
	return b
}

func (b *BookingRequestBuilder) WithPaymentMethod(m string) *BookingRequestBuilder {
	b.PaymentMethod = m
	return b
}

func (b *BookingRequestBuilder) BuildDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		TripID:            b.TripID,
		SeatID:            b.SeatID,
		PassengerName:     b.PassengerName,
		PassengerIDNumber: b.PassengerIDNumber,
		PassengerPhone:    b.PassengerPhone,
		NextOfKinName:     b.NextOfKinName,
		NextOfKinPhone:    b.NextOfKinPhone,
		PaymentMethod:     b.PaymentMethod,
	}
}
