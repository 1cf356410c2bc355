package booking

import (
	"time"

	"ticketgo/internal/pkg/bookingref"

	"github.com/google/uuid"
)

// TripSpec is the slice of the trip the factory needs: identity, the
// fare and the travel date printed on the ticket.
type TripSpec struct {
	ID         uuid.UUID
	PriceCents int64
	TravelDate time.Time
}

type Factory struct {
	references bookingref.Generator
}

func NewFactory(references bookingref.Generator) *Factory {
	return &Factory{references: references}
}

// CreateBooking assembles a confirmed booking for a freshly claimed
// seat. The reference comes from the generator; persistence enforces its
// uniqueness and the coordinator retries with a new one on collision.
func (f *Factory) CreateBooking(
	tripSpec TripSpec,
	seatID uuid.UUID,
	userID *uuid.UUID,
	passenger Passenger,
	paymentMethod PaymentMethod,
) (*Booking, error) {
	if !paymentMethod.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}

	amount, err := NewMoney(tripSpec.PriceCents)
	if err != nil {
		return nil, err
	}

	return newBooking(
		f.references.Generate(),
		tripSpec.ID,
		seatID,
		userID,
		passenger,
		tripSpec.TravelDate,
		paymentMethod,
		amount,
	)
}

// Rereference swaps in a fresh reference after a persistence collision.
// Only valid before the booking has been stored.
func (f *Factory) Rereference(b *Booking) {
	b.reference = f.references.Generate()
}
