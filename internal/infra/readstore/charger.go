package readstore

import (
	"context"
	"encoding/json"

	"chargeshare/internal/domain/charger"
	"chargeshare/internal/infra"
	"chargeshare/internal/infra/db"
	"chargeshare/internal/pkg/pgconv"
	"chargeshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type ChargerReadStore struct {
	db db.DBTX
}

func NewChargerReadStore(db db.DBTX) *ChargerReadStore {
	return &ChargerReadStore{db: db}
}

func (r *ChargerReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ChargerView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, owner_id, name, status, hourly_rate_cents, availability, created_at, updated_at
		FROM chargers
		WHERE id = $1`, id)

	var (
		view             queries.ChargerView
		availabilityJSON []byte
	)
	err := row.Scan(
		&view.ID, &view.OwnerID, &view.Name, &view.Status,
		&view.HourlyRateCents, &availabilityJSON,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("charger not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find charger by ID", err)
	}

	var availability charger.Availability
	if err := json.Unmarshal(availabilityJSON, &availability); err != nil {
		return nil, infra.WrapRepoErr("failed to decode charger availability", err)
	}
	view.Availability = availability

	return &view, nil
}
