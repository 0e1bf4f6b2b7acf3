package repository

import (
	"context"
	"encoding/json"

	"chargeshare/internal/domain/charger"
	"chargeshare/internal/infra"
	"chargeshare/internal/infra/db"
)

type ChargerRepository struct{}

func NewChargerRepository() *ChargerRepository {
	return &ChargerRepository{}
}

func (r *ChargerRepository) UpdateAvailability(ctx context.Context, tx db.DBTX, c *charger.Charger) error {
	availabilityJSON, err := json.Marshal(c.Availability())
	if err != nil {
		return infra.WrapRepoErr("failed to encode charger availability", err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE chargers
		SET availability = $2,
		    updated_at = $3
		WHERE id = $1`,
		c.ID(), availabilityJSON, c.UpdatedAt(),
	)
	if err != nil {
		return classifyWriteErr("failed to update charger availability", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("charger not found", nil, infra.KindNotFound)
	}
	return nil
}
