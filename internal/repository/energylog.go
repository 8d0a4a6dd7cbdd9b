package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lifequest/platform/internal/domain"
)

type energyLogRepo struct{}

// NewEnergyLogRepository returns a pgx-backed EnergyLogRepository.
func NewEnergyLogRepository() EnergyLogRepository {
	return &energyLogRepo{}
}

// Insert appends one audit record. There is deliberately no update or
// delete path: the log is write-once.
func (r *energyLogRepo) Insert(ctx context.Context, db DBTX, e *domain.EnergyLogEntry) error {
	_, err := db.Exec(ctx, `
		INSERT INTO energy_log (user_id, item_kind, item_id, day, energy)
		VALUES ($1, $2, $3, $4, $5)`,
		e.UserID, e.ItemKind, e.ItemID, e.Day, e.Energy,
	)
	if err != nil {
		return fmt.Errorf("insert energy log: %w", err)
	}
	return nil
}

func (r *energyLogRepo) SumSince(ctx context.Context, db DBTX, userID uuid.UUID, since time.Time) (int, error) {
	var total int
	err := db.QueryRow(ctx, `
		SELECT coalesce(sum(energy), 0) FROM energy_log
		WHERE user_id = $1 AND day >= $2`, userID, since).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum energy log: %w", err)
	}
	return total, nil
}
