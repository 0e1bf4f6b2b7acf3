package queries

import (
	"context"

	"chargeshare/internal/infra"

	"github.com/google/uuid"
)

type ChargerQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ChargerView, error)
}

type chargerQueriesImpl struct {
	chargers ChargerReadStore
}

func NewChargerQueries(chargers ChargerReadStore) ChargerQueries {
	return &chargerQueriesImpl{chargers: chargers}
}

func (q *chargerQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ChargerView, error) {
	view, err := q.chargers.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrChargerNotFound
		}
		return nil, err
	}
	return view, nil
}
