package components

import (
	"chargeshare/internal/domain/booking"
	"chargeshare/internal/pkg/clock"
	"chargeshare/internal/pkg/config"
	"chargeshare/internal/usecase"
	"chargeshare/internal/usecase/commands"
	"chargeshare/internal/usecase/queries"

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
	fx.Annotate(
		NewPriceCalculator,
		fx.As(new(booking.PriceCalculator)),
	),
)

func NewPriceCalculator(cfg config.Config) *booking.FeeCalculator {
	return booking.NewFeeCalculator(cfg.Pricing.FeeRateBps)
}

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
		commands.NewChargerUseCase,
		commands.NewCompletionSweeper,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewChargerQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
