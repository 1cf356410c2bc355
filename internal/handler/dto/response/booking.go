package response

import (
	"time"

	"ticketgo/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID                uuid.UUID  `json:"id"`
	Reference         string     `json:"reference"`
	TripID            uuid.UUID  `json:"tripId"`
	TripName          string     `json:"tripName"`
	TripCode          string     `json:"tripCode"`
	FromCity          string     `json:"fromCity"`
	ToCity            string     `json:"toCity"`
	DepartureAt       time.Time  `json:"departureAt"`
	SeatID            uuid.UUID  `json:"seatId"`
	SeatNumber        string     `json:"seatNumber"`
	UserID            *uuid.UUID `json:"userId,omitempty"`
	PassengerFullName string     `json:"passengerFullName"`
	PassengerIDNumber string     `json:"passengerIdNumber"`
	PassengerPhone    string     `json:"passengerPhone"`
	NextOfKinName     string     `json:"nextOfKinName"`
	NextOfKinPhone    string     `json:"nextOfKinPhone"`
	PaymentMethod     string     `json:"paymentMethod"`
	PaymentStatus     string     `json:"paymentStatus"`
	AmountCents       int64      `json:"amountCents"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

type BookingListResponse struct {
	ID          uuid.UUID `json:"id"`
	Reference   string    `json:"reference"`
	TripName    string    `json:"tripName"`
	FromCity    string    `json:"fromCity"`
	ToCity      string    `json:"toCity"`
	DepartureAt time.Time `json:"departureAt"`
	SeatNumber  string    `json:"seatNumber"`
	AmountCents int64     `json:"amountCents"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromBookingListItems(rms []*queries.BookingListItem) []*BookingListResponse {
	result := make([]*BookingListResponse, len(rms))
	for i, rm := range rms {
		item := &BookingListResponse{}
		_ = copier.Copy(item, rm)
		result[i] = item
	}
	return result
}
