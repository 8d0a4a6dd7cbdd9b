package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lifequest/platform/internal/domain"
)

type userRepo struct{}

// NewUserRepository returns a pgx-backed UserRepository.
func NewUserRepository() UserRepository {
	return &userRepo{}
}

const userColumns = `id, username, email, password_hash, role, energy, xp, level,
	coins, blue_gems, mana, login_streak, last_login_date, effects, created_at, updated_at`

func (r *userRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.User, error) {
	row := db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users WHERE id = $1 AND deleted = false`, id)
	return scanUser(row)
}

func (r *userRepo) FindByIdentifier(ctx context.Context, db DBTX, identifier string) (*domain.User, error) {
	row := db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users WHERE (username = $1 OR email = $1) AND deleted = false`, identifier)
	return scanUser(row)
}

func (r *userRepo) LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.User, error) {
	row := tx.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users WHERE id = $1 AND deleted = false FOR UPDATE`, id)
	return scanUser(row)
}

func (r *userRepo) Create(ctx context.Context, db DBTX, u *domain.User) error {
	effects, err := json.Marshal(u.Effects)
	if err != nil {
		return fmt.Errorf("marshal effects: %w", err)
	}
	_, err = db.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash, role, energy, xp, level,
			coins, blue_gems, mana, login_streak, last_login_date, effects)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Role, u.Energy, u.XP, u.Level,
		u.Coins, u.BlueGems, u.Mana, u.LoginStreak, u.LastLoginDate, effects,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepo) Save(ctx context.Context, db DBTX, u *domain.User) error {
	effects, err := json.Marshal(u.Effects)
	if err != nil {
		return fmt.Errorf("marshal effects: %w", err)
	}
	_, err = db.Exec(ctx, `
		UPDATE users SET energy = $2, xp = $3, level = $4, coins = $5, blue_gems = $6,
			mana = $7, login_streak = $8, last_login_date = $9, effects = $10,
			updated_at = now()
		WHERE id = $1`,
		u.ID, u.Energy, u.XP, u.Level, u.Coins, u.BlueGems,
		u.Mana, u.LoginStreak, u.LastLoginDate, effects,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var effects []byte
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.Energy, &u.XP, &u.Level, &u.Coins, &u.BlueGems, &u.Mana,
		&u.LoginStreak, &u.LastLoginDate, &effects, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if len(effects) > 0 {
		if err := json.Unmarshal(effects, &u.Effects); err != nil {
			return nil, fmt.Errorf("unmarshal effects: %w", err)
		}
	}
	if u.Effects.Active == nil {
		u.Effects = domain.NewEffectState()
	}
	return &u, nil
}
