package components

import (
	"chargeshare/internal/infra/db"
	"chargeshare/internal/infra/readstore"
	"chargeshare/internal/infra/uow"
	"chargeshare/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// NewPostgresUoW already returns shared.UnitOfWork
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewChargerReadStore,
			fx.As(new(queries.ChargerReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
