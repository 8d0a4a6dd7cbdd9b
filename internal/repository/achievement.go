package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lifequest/platform/internal/domain"
)

type achievementRepo struct{}

// NewAchievementRepository returns a pgx-backed AchievementRepository.
func NewAchievementRepository() AchievementRepository {
	return &achievementRepo{}
}

const achievementColumns = `id, name, description, condition_type, threshold,
	honorific_title, is_surprise, predicate_key, created_at`

func (r *achievementRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Achievement, error) {
	row := db.QueryRow(ctx, `
		SELECT `+achievementColumns+`
		FROM achievements WHERE id = $1 AND deleted = false`, id)
	return scanAchievement(row)
}

func (r *achievementRepo) ListActive(ctx context.Context, db DBTX) ([]domain.Achievement, error) {
	rows, err := db.Query(ctx, `
		SELECT `+achievementColumns+`
		FROM achievements WHERE deleted = false
		ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	var defs []domain.Achievement
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, *a)
	}
	return defs, rows.Err()
}

func (r *achievementRepo) Create(ctx context.Context, db DBTX, a *domain.Achievement) error {
	_, err := db.Exec(ctx, `
		INSERT INTO achievements (id, name, description, condition_type, threshold,
			honorific_title, is_surprise, predicate_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.Name, a.Description, a.ConditionType, a.Threshold,
		a.HonorificTitle, a.IsSurprise, a.PredicateKey,
	)
	if err != nil {
		return fmt.Errorf("insert achievement: %w", err)
	}
	return nil
}

func (r *achievementRepo) Update(ctx context.Context, db DBTX, a *domain.Achievement) error {
	_, err := db.Exec(ctx, `
		UPDATE achievements SET name = $2, description = $3, condition_type = $4,
			threshold = $5, honorific_title = $6, is_surprise = $7, predicate_key = $8
		WHERE id = $1 AND deleted = false`,
		a.ID, a.Name, a.Description, a.ConditionType, a.Threshold,
		a.HonorificTitle, a.IsSurprise, a.PredicateKey,
	)
	if err != nil {
		return fmt.Errorf("update achievement: %w", err)
	}
	return nil
}

func (r *achievementRepo) SoftDelete(ctx context.Context, db DBTX, id uuid.UUID) error {
	_, err := db.Exec(ctx, `UPDATE achievements SET deleted = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete achievement: %w", err)
	}
	return nil
}

func (r *achievementRepo) UnlockedIDs(ctx context.Context, db DBTX, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	rows, err := db.Query(ctx, `
		SELECT achievement_id FROM user_achievements WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list unlocked ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan unlocked id: %w", err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// CreateUnlock relies on the unique index on (user_id, achievement_id):
// a conflicting insert is reported as created=false, not an error.
func (r *achievementRepo) CreateUnlock(ctx context.Context, db DBTX, u *domain.AchievementUnlock) (bool, error) {
	tag, err := db.Exec(ctx, `
		INSERT INTO user_achievements (id, user_id, achievement_id, achieved_at, progress)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, achievement_id) DO NOTHING`,
		u.ID, u.UserID, u.AchievementID, u.AchievedAt, u.Progress,
	)
	if err != nil {
		return false, fmt.Errorf("insert unlock: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *achievementRepo) ListUnlocks(ctx context.Context, db DBTX, userID uuid.UUID) ([]domain.AchievementUnlock, error) {
	rows, err := db.Query(ctx, `
		SELECT id, user_id, achievement_id, achieved_at, progress
		FROM user_achievements WHERE user_id = $1
		ORDER BY achieved_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list unlocks: %w", err)
	}
	defer rows.Close()

	var unlocks []domain.AchievementUnlock
	for rows.Next() {
		var u domain.AchievementUnlock
		if err := rows.Scan(&u.ID, &u.UserID, &u.AchievementID, &u.AchievedAt, &u.Progress); err != nil {
			return nil, fmt.Errorf("scan unlock: %w", err)
		}
		unlocks = append(unlocks, u)
	}
	return unlocks, rows.Err()
}

func scanAchievement(row pgx.Row) (*domain.Achievement, error) {
	var a domain.Achievement
	err := row.Scan(&a.ID, &a.Name, &a.Description, &a.ConditionType, &a.Threshold,
		&a.HonorificTitle, &a.IsSurprise, &a.PredicateKey, &a.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan achievement: %w", err)
	}
	return &a, nil
}
