package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lifequest/platform/internal/domain"
)

// Catalog repositories for the store: gear, inventory, skills, effects.

type gearRepo struct{}

// NewGearRepository returns a pgx-backed GearRepository.
func NewGearRepository() GearRepository {
	return &gearRepo{}
}

const gearColumns = `id, name, description, cost, max_uses, consumable, rarity, effect_id`

func (r *gearRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Gear, error) {
	row := db.QueryRow(ctx, `
		SELECT `+gearColumns+`
		FROM gear WHERE id = $1 AND deleted = false`, id)
	return scanGear(row)
}

// ListAvailable returns gear the user does not own yet.
func (r *gearRepo) ListAvailable(ctx context.Context, db DBTX, userID uuid.UUID) ([]domain.Gear, error) {
	rows, err := db.Query(ctx, `
		SELECT `+gearColumns+`
		FROM gear g
		WHERE g.deleted = false
		  AND NOT EXISTS (
			SELECT 1 FROM inventory_items i
			WHERE i.gear_id = g.id AND i.user_id = $1 AND i.deleted = false
		  )
		ORDER BY g.cost`, userID)
	if err != nil {
		return nil, fmt.Errorf("list gear: %w", err)
	}
	defer rows.Close()

	var items []domain.Gear
	for rows.Next() {
		g, err := scanGear(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *g)
	}
	return items, rows.Err()
}

func scanGear(row pgx.Row) (*domain.Gear, error) {
	var g domain.Gear
	err := row.Scan(&g.ID, &g.Name, &g.Description, &g.Cost, &g.MaxUses,
		&g.Consumable, &g.Rarity, &g.EffectID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan gear: %w", err)
	}
	return &g, nil
}

type inventoryRepo struct{}

// NewInventoryRepository returns a pgx-backed InventoryRepository.
func NewInventoryRepository() InventoryRepository {
	return &inventoryRepo{}
}

const inventoryColumns = `id, user_id, gear_id, remaining_uses, acquired_at`

func (r *inventoryRepo) FindByGear(ctx context.Context, db DBTX, userID, gearID uuid.UUID) (*domain.InventoryItem, error) {
	row := db.QueryRow(ctx, `
		SELECT `+inventoryColumns+`
		FROM inventory_items
		WHERE user_id = $1 AND gear_id = $2 AND deleted = false`, userID, gearID)
	return scanInventoryItem(row)
}

func (r *inventoryRepo) ListByUser(ctx context.Context, db DBTX, userID uuid.UUID) ([]domain.InventoryItem, error) {
	rows, err := db.Query(ctx, `
		SELECT `+inventoryColumns+`
		FROM inventory_items WHERE user_id = $1 AND deleted = false
		ORDER BY acquired_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (r *inventoryRepo) Create(ctx context.Context, db DBTX, it *domain.InventoryItem) error {
	_, err := db.Exec(ctx, `
		INSERT INTO inventory_items (id, user_id, gear_id, remaining_uses)
		VALUES ($1, $2, $3, $4)`,
		it.ID, it.UserID, it.GearID, it.RemainingUses,
	)
	if err != nil {
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

func (r *inventoryRepo) SetRemainingUses(ctx context.Context, db DBTX, id uuid.UUID, uses int) error {
	_, err := db.Exec(ctx, `
		UPDATE inventory_items SET remaining_uses = $2 WHERE id = $1`, id, uses)
	if err != nil {
		return fmt.Errorf("set remaining uses: %w", err)
	}
	return nil
}

func scanInventoryItem(row pgx.Row) (*domain.InventoryItem, error) {
	var it domain.InventoryItem
	err := row.Scan(&it.ID, &it.UserID, &it.GearID, &it.RemainingUses, &it.AcquiredAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan inventory item: %w", err)
	}
	return &it, nil
}

type skillRepo struct{}

// NewSkillRepository returns a pgx-backed SkillRepository.
func NewSkillRepository() SkillRepository {
	return &skillRepo{}
}

const skillColumns = `id, name, description, level_required, mana_cost, is_zone_skill, effect_id`

func (r *skillRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Skill, error) {
	row := db.QueryRow(ctx, `
		SELECT `+skillColumns+`
		FROM skills WHERE id = $1 AND deleted = false`, id)
	return scanSkill(row)
}

// ListAvailable returns skills the user does not own yet.
func (r *skillRepo) ListAvailable(ctx context.Context, db DBTX, userID uuid.UUID) ([]domain.Skill, error) {
	rows, err := db.Query(ctx, `
		SELECT `+skillColumns+`
		FROM skills s
		WHERE s.deleted = false
		  AND NOT EXISTS (
			SELECT 1 FROM user_skills us
			WHERE us.skill_id = s.id AND us.user_id = $1
		  )
		ORDER BY s.level_required`, userID)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	var skills []domain.Skill
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		skills = append(skills, *s)
	}
	return skills, rows.Err()
}

func (r *skillRepo) Owns(ctx context.Context, db DBTX, userID, skillID uuid.UUID) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM user_skills WHERE user_id = $1 AND skill_id = $2
		)`, userID, skillID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check skill ownership: %w", err)
	}
	return exists, nil
}

func (r *skillRepo) Grant(ctx context.Context, db DBTX, userID, skillID uuid.UUID) error {
	_, err := db.Exec(ctx, `
		INSERT INTO user_skills (user_id, skill_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, userID, skillID)
	if err != nil {
		return fmt.Errorf("grant skill: %w", err)
	}
	return nil
}

func scanSkill(row pgx.Row) (*domain.Skill, error) {
	var s domain.Skill
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.LevelRequired, &s.ManaCost,
		&s.IsZoneSkill, &s.EffectID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan skill: %w", err)
	}
	return &s, nil
}

type effectRepo struct{}

// NewEffectRepository returns a pgx-backed EffectRepository.
func NewEffectRepository() EffectRepository {
	return &effectRepo{}
}

func (r *effectRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Effect, error) {
	row := db.QueryRow(ctx, `
		SELECT id, name, logic_key, description
		FROM effects WHERE id = $1 AND deleted = false`, id)
	var e domain.Effect
	err := row.Scan(&e.ID, &e.Name, &e.LogicKey, &e.Description)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan effect: %w", err)
	}
	return &e, nil
}

func (r *effectRepo) ListActive(ctx context.Context, db DBTX) ([]domain.Effect, error) {
	rows, err := db.Query(ctx, `
		SELECT id, name, logic_key, description
		FROM effects WHERE deleted = false ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list effects: %w", err)
	}
	defer rows.Close()

	var effects []domain.Effect
	for rows.Next() {
		var e domain.Effect
		if err := rows.Scan(&e.ID, &e.Name, &e.LogicKey, &e.Description); err != nil {
			return nil, fmt.Errorf("scan effect: %w", err)
		}
		effects = append(effects, e)
	}
	return effects, rows.Err()
}
