package commands

import (
	"context"

	"chargeshare/internal/domain/charger"
	"chargeshare/internal/domain/user"
	reqdto "chargeshare/internal/handler/dto/request"
	"chargeshare/internal/infra"
	"chargeshare/internal/pkg/clock"
	"chargeshare/internal/pkg/errs"
	"chargeshare/internal/usecase/queries"
	"chargeshare/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrNotChargerOwner     = errs.New("only the owner can manage this charger")
	ErrInvalidAvailability = errs.New("invalid availability")
	ErrBlockedDateInPast   = errs.New("blocked dates must not be in the past")
)

type ChargerCommands interface {
	UpdateAvailability(ctx context.Context, chargerID uuid.UUID, actorID uuid.UUID, actorRole user.Role, req reqdto.UpdateAvailabilityRequest) (*queries.ChargerView, error)
}

type chargerUseCaseImpl struct {
	uow            shared.UnitOfWork
	chargerQueries queries.ChargerQueries
	clock          clock.Clock
}

func NewChargerUseCase(
	uow shared.UnitOfWork,
	chargerQueries queries.ChargerQueries,
	clock clock.Clock,
) ChargerCommands {
	return &chargerUseCaseImpl{
		uow:            uow,
		chargerQueries: chargerQueries,
		clock:          clock,
	}
}

func (u *chargerUseCaseImpl) UpdateAvailability(
	ctx context.Context,
	chargerID uuid.UUID,
	actorID uuid.UUID,
	actorRole user.Role,
	req reqdto.UpdateAvailabilityRequest,
) (*queries.ChargerView, error) {
	next, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidAvailability)
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snapshot, err := tx.Reads().ChargerByID(ctx, chargerID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrChargerNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		entity := snapshot.ToDomain()
		if !actorRole.IsAdmin() && !entity.IsOwnedBy(actorID) {
			return ErrNotChargerOwner
		}

		if err := entity.UpdateAvailability(next, u.clock.Now()); err != nil {
			return markAvailabilityError(err)
		}

		if err := tx.Chargers().UpdateAvailability(ctx, tx.DB(), entity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := u.chargerQueries.GetByID(ctx, chargerID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func markAvailabilityError(err error) error {
	switch {
	case errs.Is(err, charger.ErrBlockedDateInPast):
		return errs.Mark(err, ErrBlockedDateInPast)
	case errs.Is(err, charger.ErrInvalidWindow), errs.Is(err, charger.ErrInvalidBlockedDate):
		return errs.Mark(err, ErrInvalidAvailability)
	default:
		return errs.Mark(err, ErrInvalidAvailability)
	}
}
