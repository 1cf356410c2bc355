//go:build unit

package trip_test

import (
	"strings"
	"testing"
	"time"

	"ticketgo/internal/domain/trip"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tripArgs struct {
	kind       trip.Kind
	name       string
	code       string
	fromCity   string
	toCity     string
	departure  time.Time
	arrival    time.Time
	priceCents int64
	totalSeats int
}

func validArgs() tripArgs {
	departure := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)
	return tripArgs{
		kind:       trip.KindBus,
		name:       "Harare Express",
		code:       "HRE-BYO-001",
		fromCity:   "Harare",
		toCity:     "Bulawayo",
		departure:  departure,
		arrival:    departure.Add(6 * time.Hour),
		priceCents: 2500,
		totalSeats: 40,
	}
}

func build(a tripArgs) (*trip.Trip, error) {
	return trip.NewTrip(a.kind, a.name, a.code, a.fromCity, a.toCity, a.departure, a.arrival, a.priceCents, a.totalSeats)
}

func TestNewTrip(t *testing.T) {
	t.Run("valid trip", func(t *testing.T) {
		actual, err := build(validArgs())
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, trip.KindBus, actual.Kind())
		assert.Equal(t, "Harare Express", actual.Name())
		assert.Equal(t, 40, actual.TotalSeats())
		assert.Equal(t, 40, actual.AvailableSeats())
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*tripArgs)
			errIs  error
		}{
			{
				name:   "flight kind ok",
				mutate: func(a *tripArgs) { a.kind = trip.KindFlight },
			},
			{
				name:   "event kind ok",
				mutate: func(a *tripArgs) { a.kind = trip.KindEvent },
			},
			{
				name:   "unknown kind",
				mutate: func(a *tripArgs) { a.kind = trip.Kind("train") },
				errIs:  trip.ErrInvalidKind,
			},
			{
				name:   "empty name",
				mutate: func(a *tripArgs) { a.name = "   " },
				errIs:  trip.ErrEmptyTripName,
			},
			{
				name:   "name too long",
				mutate: func(a *tripArgs) { a.name = strings.Repeat("a", trip.MaxTripNameLength+1) },
				errIs:  trip.ErrTripNameTooLong,
			},
			{
				name:   "empty origin",
				mutate: func(a *tripArgs) { a.fromCity = "" },
				errIs:  trip.ErrEmptyCity,
			},
			{
				name:   "empty destination",
				mutate: func(a *tripArgs) { a.toCity = " " },
				errIs:  trip.ErrEmptyCity,
			},
			{
				name:   "zero seats",
				mutate: func(a *tripArgs) { a.totalSeats = 0 },
				errIs:  trip.ErrInvalidCapacity,
			},
			{
				name:   "capacity boundary ok",
				mutate: func(a *tripArgs) { a.totalSeats = trip.MaxCapacity },
			},
			{
				name:   "capacity over limit",
				mutate: func(a *tripArgs) { a.totalSeats = trip.MaxCapacity + 1 },
				errIs:  trip.ErrInvalidCapacity,
			},
			{
				name:   "negative price",
				mutate: func(a *tripArgs) { a.priceCents = -1 },
				errIs:  trip.ErrNegativePrice,
			},
			{
				name:   "free trip ok",
				mutate: func(a *tripArgs) { a.priceCents = 0 },
			},
			{
				name:   "arrival before departure",
				mutate: func(a *tripArgs) { a.arrival = a.departure.Add(-time.Hour) },
				errIs:  trip.ErrInvalidSchedule,
			},
			{
				name:   "arrival equals departure",
				mutate: func(a *tripArgs) { a.arrival = a.departure },
				errIs:  trip.ErrInvalidSchedule,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				args := validArgs()
				tt.mutate(&args)

				actual, err := build(args)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
					assert.Nil(t, actual)
				} else {
					require.NoError(t, err)
					require.NotNil(t, actual)
				}
			})
		}
	})
}

func TestSeatNumbers(t *testing.T) {
	t.Run("fills rows four across", func(t *testing.T) {
		args := validArgs()
		args.totalSeats = 10
		tr, err := build(args)
		require.NoError(t, err)

		expected := []string{"1A", "1B", "1C", "1D", "2A", "2B", "2C", "2D", "3A", "3B"}
		assert.Equal(t, expected, tr.SeatNumbers())
	})

	t.Run("count matches capacity and labels are unique", func(t *testing.T) {
		args := validArgs()
		args.totalSeats = trip.MaxCapacity
		tr, err := build(args)
		require.NoError(t, err)

		numbers := tr.SeatNumbers()
		require.Len(t, numbers, trip.MaxCapacity)

		seen := make(map[string]struct{}, len(numbers))
		for _, n := range numbers {
			_, dup := seen[n]
			require.False(t, dup, "duplicate seat number %s", n)
			seen[n] = struct{}{}
		}
		assert.Equal(t, "250D", numbers[len(numbers)-1])
	})

	t.Run("single seat", func(t *testing.T) {
		args := validArgs()
		args.totalSeats = 1
		tr, err := build(args)
		require.NoError(t, err)

		assert.Equal(t, []string{"1A"}, tr.SeatNumbers())
	})
}

func TestNewKind(t *testing.T) {
	for _, valid := range []string{"bus", "flight", "event"} {
		k, err := trip.NewKind(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, k.String())
	}

	_, err := trip.NewKind("ferry")
	assert.ErrorIs(t, err, trip.ErrInvalidKind)
}
