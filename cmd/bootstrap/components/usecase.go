package components

import (
	"ticketgo/internal/domain/booking"
	"ticketgo/internal/pkg/bookingref"
	"ticketgo/internal/pkg/clock"
	"ticketgo/internal/pkg/config"
	"ticketgo/internal/usecase"
	"ticketgo/internal/usecase/commands"
	"ticketgo/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewReferenceGenerator,
	booking.NewFactory,
)

func NewReferenceGenerator(cfg config.Config) (bookingref.Generator, error) {
	return bookingref.NewSequenceGenerator(cfg.Booking.ReferencePrefix)
}

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBookingCommands,
		commands.NewTripCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewBookingQueries,
		queries.NewTripQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
