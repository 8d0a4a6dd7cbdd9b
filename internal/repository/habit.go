package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lifequest/platform/internal/domain"
)

type habitRepo struct{}

// NewHabitRepository returns a pgx-backed HabitRepository.
func NewHabitRepository() HabitRepository {
	return &habitRepo{}
}

const habitColumns = `id, user_id, zone_id, name, description, active, energy, points,
	frequency, streak, total_checks, created_at`

func (r *habitRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Habit, error) {
	row := db.QueryRow(ctx, `
		SELECT `+habitColumns+`
		FROM habits WHERE id = $1 AND deleted = false`, id)
	return scanHabit(row)
}

func (r *habitRepo) ListByUser(ctx context.Context, db DBTX, userID uuid.UUID) ([]domain.Habit, error) {
	rows, err := db.Query(ctx, `
		SELECT `+habitColumns+`
		FROM habits WHERE user_id = $1 AND deleted = false
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	var habits []domain.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, *h)
	}
	return habits, rows.Err()
}

func (r *habitRepo) Create(ctx context.Context, db DBTX, h *domain.Habit) error {
	_, err := db.Exec(ctx, `
		INSERT INTO habits (id, user_id, zone_id, name, description, active, energy,
			points, frequency, streak, total_checks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		h.ID, h.UserID, h.ZoneID, h.Name, h.Description, h.Active, h.Energy,
		h.Points, h.Frequency, h.Streak, h.TotalChecks,
	)
	if err != nil {
		return fmt.Errorf("insert habit: %w", err)
	}
	return nil
}

func (r *habitRepo) Save(ctx context.Context, db DBTX, h *domain.Habit) error {
	_, err := db.Exec(ctx, `
		UPDATE habits SET active = $2, streak = $3, total_checks = $4
		WHERE id = $1`,
		h.ID, h.Active, h.Streak, h.TotalChecks,
	)
	if err != nil {
		return fmt.Errorf("update habit: %w", err)
	}
	return nil
}

func (r *habitRepo) SoftDelete(ctx context.Context, db DBTX, id uuid.UUID) error {
	_, err := db.Exec(ctx, `UPDATE habits SET deleted = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	return nil
}

func scanHabit(row pgx.Row) (*domain.Habit, error) {
	var h domain.Habit
	err := row.Scan(&h.ID, &h.UserID, &h.ZoneID, &h.Name, &h.Description, &h.Active,
		&h.Energy, &h.Points, &h.Frequency, &h.Streak, &h.TotalChecks, &h.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan habit: %w", err)
	}
	return &h, nil
}
