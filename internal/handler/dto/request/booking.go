package request

import (
	"ticketgo/internal/domain/booking"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	TripID            uuid.UUID `json:"trip_id" binding:"required"`
	SeatID            uuid.UUID `json:"seat_id" binding:"required"`
	PassengerName     string    `json:"passenger_name" binding:"required"`
	PassengerIDNumber string    `json:"passenger_id_number" binding:"required"`
	PassengerPhone    string    `json:"passenger_phone" binding:"required"`
	NextOfKinName     string    `json:"next_of_kin_name" binding:"required"`
	NextOfKinPhone    string    `json:"next_of_kin_phone" binding:"required"`
	PaymentMethod     string    `json:"payment_method" binding:"required"`
}

func (r CreateBookingRequest) ToPassenger() (booking.Passenger, error) {
	return booking.NewPassenger(
		r.PassengerName,
		r.PassengerIDNumber,
		r.PassengerPhone,
		r.NextOfKinName,
		r.NextOfKinPhone,
	)
}

func (r CreateBookingRequest) ToPaymentMethod() (booking.PaymentMethod, error) {
	return booking.NewPaymentMethod(r.PaymentMethod)
}
