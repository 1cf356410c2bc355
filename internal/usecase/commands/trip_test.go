//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"ticketgo/internal/usecase/commands"
	"ticketgo/tests/common/builder"
	"ticketgo/tests/common/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTripCommands() (*memstore.Store, commands.TripCommands) {
	store := memstore.New()
	return store, commands.NewTripCommands(store, store.TripReadStore())
}

func TestCreateTrip(t *testing.T) {
	t.Run("creates the trip with its full seat map", func(t *testing.T) {
		store, cmds := newTripCommands()

		req := builder.NewTripBuilder().WithTotalSeats(10).BuildDTO()
		view, err := cmds.CreateTrip(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, req.Name, view.Name)
		assert.Equal(t, req.Code, view.Code)
		assert.Equal(t, int32(10), view.TotalSeats)
		assert.Equal(t, int32(10), view.AvailableSeats)

		seats, err := store.TripReadStore().FindSeatsByTripID(context.Background(), view.ID)
		require.NoError(t, err)
		require.Len(t, seats, 10)
		assert.Equal(t, "1A", seats[0].SeatNumber)
		for _, s := range seats {
			assert.Equal(t, "available", s.Status)
		}
	})

	t.Run("lists seats in row order past row nine", func(t *testing.T) {
		store, cmds := newTripCommands()

		// 44 seats is 11 rows of 4, so the listing crosses from
		// single-digit into double-digit row numbers.
		req := builder.NewTripBuilder().WithTotalSeats(44).BuildDTO()
		view, err := cmds.CreateTrip(context.Background(), req)
		require.NoError(t, err)

		seats, err := store.TripReadStore().FindSeatsByTripID(context.Background(), view.ID)
		require.NoError(t, err)
		require.Len(t, seats, 44)
		assert.Equal(t, "1A", seats[0].SeatNumber)
		assert.Equal(t, "9D", seats[35].SeatNumber)
		assert.Equal(t, "10A", seats[36].SeatNumber)
		assert.Equal(t, "11D", seats[43].SeatNumber)
	})

	t.Run("rejects invalid trip data", func(t *testing.T) {
		_, cmds := newTripCommands()

		req := builder.NewTripBuilder().BuildDTO()
		req.DepartureAt = time.Now().Add(24 * time.Hour)
		req.ArrivalAt = req.DepartureAt.Add(-time.Hour)

		_, err := cmds.CreateTrip(context.Background(), req)
		assert.ErrorIs(t, err, commands.ErrInvalidTrip)
	})

	t.Run("rejects duplicate trip codes", func(t *testing.T) {
		_, cmds := newTripCommands()

		req := builder.NewTripBuilder().BuildDTO()
		_, err := cmds.CreateTrip(context.Background(), req)
		require.NoError(t, err)

		_, err = cmds.CreateTrip(context.Background(), req)
		assert.ErrorIs(t, err, commands.ErrDuplicateTrip)
	})
}
