//go:build unit

package booking_test

import (
	"testing"
	"time"

	"ticketgo/internal/domain/booking"
	"ticketgo/internal/pkg/bookingref"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passengerArgs struct {
	name           string
	idNumber       string
	phone          string
	nextOfKinName  string
	nextOfKinPhone string
}

func validPassengerArgs() passengerArgs {
	return passengerArgs{
		name:           "Tinashe Moyo",
		idNumber:       "63-123456A70",
		phone:          "+263771234567",
		nextOfKinName:  "Rudo Moyo",
		nextOfKinPhone: "+263772345678",
	}
}

func buildPassenger(a passengerArgs) (booking.Passenger, error) {
	return booking.NewPassenger(a.name, a.idNumber, a.phone, a.nextOfKinName, a.nextOfKinPhone)
}

func TestNewPassenger(t *testing.T) {
	t.Run("valid passenger", func(t *testing.T) {
		actual, err := buildPassenger(validPassengerArgs())
		require.NoError(t, err)

		expected, err := booking.NewPassenger("Tinashe Moyo", "63-123456A70", "+263771234567", "Rudo Moyo", "+263772345678")
		require.NoError(t, err)
		if diff := cmp.Diff(expected, actual, cmp.AllowUnexported(booking.Passenger{})); diff != "" {
			t.Errorf("Passenger mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		args := validPassengerArgs()
		args.name = "  Tinashe Moyo  "
		p, err := buildPassenger(args)
		require.NoError(t, err)
		assert.Equal(t, "Tinashe Moyo", p.Name())
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*passengerArgs)
			errIs  error
		}{
			{
				name:   "name boundary ok (2 chars)",
				mutate: func(a *passengerArgs) { a.name = "Jo" },
			},
			{
				name:   "name too short",
				mutate: func(a *passengerArgs) { a.name = "J" },
				errIs:  booking.ErrPassengerNameTooShort,
			},
			{
				name:   "whitespace-only name",
				mutate: func(a *passengerArgs) { a.name = "   " },
				errIs:  booking.ErrPassengerNameTooShort,
			},
			{
				name:   "id number boundary ok (5 chars)",
				mutate: func(a *passengerArgs) { a.idNumber = "12345" },
			},
			{
				name:   "id number too short",
				mutate: func(a *passengerArgs) { a.idNumber = "1234" },
				errIs:  booking.ErrIDNumberTooShort,
			},
			{
				name:   "phone boundary ok (10 digits)",
				mutate: func(a *passengerArgs) { a.phone = "0771234567" },
			},
			{
				name:   "phone with formatting counts digits only",
				mutate: func(a *passengerArgs) { a.phone = "(077) 123-4567" },
			},
			{
				name:   "phone too few digits",
				mutate: func(a *passengerArgs) { a.phone = "077123456" },
				errIs:  booking.ErrPhoneTooShort,
			},
			{
				name:   "next of kin name too short",
				mutate: func(a *passengerArgs) { a.nextOfKinName = "R" },
				errIs:  booking.ErrNextOfKinNameTooShort,
			},
			{
				name:   "next of kin phone too few digits",
				mutate: func(a *passengerArgs) { a.nextOfKinPhone = "12345" },
				errIs:  booking.ErrPhoneTooShort,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				args := validPassengerArgs()
				tt.mutate(&args)

				_, err := buildPassenger(args)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})
}

func TestNewMoney(t *testing.T) {
	m, err := booking.NewMoney(2500)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), m.Cents())
	assert.InDelta(t, 25.0, m.Dollars(), 0.0001)

	zero, err := booking.NewMoney(0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), zero.Cents())

	_, err = booking.NewMoney(-1)
	assert.ErrorIs(t, err, booking.ErrNegativeAmount)
}

func TestNewPaymentMethod(t *testing.T) {
	for _, valid := range []string{"paynow", "ecocash", "innbucks"} {
		m, err := booking.NewPaymentMethod(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, m.String())
	}

	_, err := booking.NewPaymentMethod("cash")
	assert.ErrorIs(t, err, booking.ErrInvalidPaymentMethod)
}

func newFactory(t *testing.T) *booking.Factory {
	t.Helper()
	gen, err := bookingref.NewSequenceGenerator("TG")
	require.NoError(t, err)
	return booking.NewFactory(gen)
}

func TestFactoryCreateBooking(t *testing.T) {
	passenger, err := buildPassenger(validPassengerArgs())
	require.NoError(t, err)

	spec := booking.TripSpec{
		ID:         uuid.New(),
		PriceCents: 2500,
		TravelDate: time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC),
	}
	seatID := uuid.New()

	t.Run("confirmed booking with generated reference", func(t *testing.T) {
		userID := uuid.New()
		b, err := newFactory(t).CreateBooking(spec, seatID, &userID, passenger, booking.PaymentEcocash)
		require.NoError(t, err)

		assert.Regexp(t, bookingref.Pattern, b.Reference())
		assert.Equal(t, spec.ID, b.TripID())
		assert.Equal(t, seatID, b.SeatID())
		require.NotNil(t, b.UserID())
		assert.Equal(t, userID, *b.UserID())
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Equal(t, booking.PaymentStatusCompleted, b.PaymentStatus())
		assert.Equal(t, int64(2500), b.TotalAmount().Cents())
		assert.True(t, spec.TravelDate.Equal(b.TravelDate()))
		assert.True(t, b.IsConfirmed())
		assert.False(t, b.IsCancelled())
	})

	t.Run("anonymous booking keeps nil user", func(t *testing.T) {
		b, err := newFactory(t).CreateBooking(spec, seatID, nil, passenger, booking.PaymentPaynow)
		require.NoError(t, err)
		assert.Nil(t, b.UserID())
	})

	t.Run("invalid payment method rejected", func(t *testing.T) {
		_, err := newFactory(t).CreateBooking(spec, seatID, nil, passenger, booking.PaymentMethod("cheque"))
		assert.ErrorIs(t, err, booking.ErrInvalidPaymentMethod)
	})

	t.Run("negative fare rejected", func(t *testing.T) {
		badSpec := spec
		badSpec.PriceCents = -100
		_, err := newFactory(t).CreateBooking(badSpec, seatID, nil, passenger, booking.PaymentEcocash)
		assert.ErrorIs(t, err, booking.ErrNegativeAmount)
	})

	t.Run("rereference issues a different reference", func(t *testing.T) {
		factory := newFactory(t)
		b, err := factory.CreateBooking(spec, seatID, nil, passenger, booking.PaymentEcocash)
		require.NoError(t, err)

		before := b.Reference()
		factory.Rereference(b)
		assert.NotEqual(t, before, b.Reference())
		assert.Regexp(t, bookingref.Pattern, b.Reference())
	})
}

func TestCancel(t *testing.T) {
	passenger, err := buildPassenger(validPassengerArgs())
	require.NoError(t, err)

	spec := booking.TripSpec{ID: uuid.New(), PriceCents: 2500, TravelDate: time.Now().Add(72 * time.Hour)}

	b, err := newFactory(t).CreateBooking(spec, uuid.New(), nil, passenger, booking.PaymentInnbucks)
	require.NoError(t, err)

	require.NoError(t, b.Cancel())
	assert.Equal(t, booking.StatusCancelled, b.Status())
	assert.Equal(t, booking.PaymentStatusRefunded, b.PaymentStatus())

	assert.ErrorIs(t, b.Cancel(), booking.ErrAlreadyCancelled)
}

func TestReconstructRejectsUnknownStatus(t *testing.T) {
	passenger, err := buildPassenger(validPassengerArgs())
	require.NoError(t, err)

	money, err := booking.NewMoney(1000)
	require.NoError(t, err)

	_, err = booking.Reconstruct(
		uuid.New(), "TG12345678", uuid.New(), uuid.New(), nil,
		passenger, time.Now(), booking.PaymentEcocash,
		booking.PaymentStatusCompleted, booking.Status("pending"),
		money, time.Now(), time.Now(),
	)
	assert.ErrorIs(t, err, booking.ErrInvalidStatus)
}
