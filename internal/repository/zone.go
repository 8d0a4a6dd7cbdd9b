package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lifequest/platform/internal/domain"
)

type zoneRepo struct{}

// NewZoneRepository returns a pgx-backed ZoneRepository.
func NewZoneRepository() ZoneRepository {
	return &zoneRepo{}
}

const zoneColumns = `id, user_id, name, color, energy, xp, level, yellow_gems, created_at`

func (r *zoneRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Zone, error) {
	row := db.QueryRow(ctx, `
		SELECT `+zoneColumns+`
		FROM zones WHERE id = $1 AND deleted = false`, id)
	return scanZone(row)
}

func (r *zoneRepo) ListByUser(ctx context.Context, db DBTX, userID uuid.UUID) ([]domain.Zone, error) {
	rows, err := db.Query(ctx, `
		SELECT `+zoneColumns+`
		FROM zones WHERE user_id = $1 AND deleted = false
		ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	defer rows.Close()

	var zones []domain.Zone
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			return nil, err
		}
		zones = append(zones, *z)
	}
	return zones, rows.Err()
}

func (r *zoneRepo) Create(ctx context.Context, db DBTX, z *domain.Zone) error {
	_, err := db.Exec(ctx, `
		INSERT INTO zones (id, user_id, name, color, energy, xp, level, yellow_gems)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		z.ID, z.UserID, z.Name, z.Color, z.Energy, z.XP, z.Level, z.YellowGems,
	)
	if err != nil {
		return fmt.Errorf("insert zone: %w", err)
	}
	return nil
}

func (r *zoneRepo) LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Zone, error) {
	row := tx.QueryRow(ctx, `
		SELECT `+zoneColumns+`
		FROM zones WHERE id = $1 AND deleted = false FOR UPDATE`, id)
	return scanZone(row)
}

func (r *zoneRepo) Save(ctx context.Context, db DBTX, z *domain.Zone) error {
	_, err := db.Exec(ctx, `
		UPDATE zones SET name = $2, color = $3, energy = $4, xp = $5, level = $6,
			yellow_gems = $7
		WHERE id = $1`,
		z.ID, z.Name, z.Color, z.Energy, z.XP, z.Level, z.YellowGems,
	)
	if err != nil {
		return fmt.Errorf("update zone: %w", err)
	}
	return nil
}

func scanZone(row pgx.Row) (*domain.Zone, error) {
	var z domain.Zone
	err := row.Scan(&z.ID, &z.UserID, &z.Name, &z.Color, &z.Energy, &z.XP, &z.Level,
		&z.YellowGems, &z.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan zone: %w", err)
	}
	return &z, nil
}
