package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lifequest/platform/internal/domain"
	"github.com/lifequest/platform/internal/gamify"
	"github.com/lifequest/platform/internal/repository"
)

// EffectService applies catalog effects to users: directly, through skill
// usage, or through consumable gear. Mutations of user state run under the
// same row lock as the reward pipeline.
type EffectService struct {
	pool      *pgxpool.Pool
	users     repository.UserRepository
	effects   repository.EffectRepository
	skills    repository.SkillRepository
	gear      repository.GearRepository
	inventory repository.InventoryRepository
	engine    *gamify.Effects
	logger    *slog.Logger
}

// NewEffectService creates an EffectService.
func NewEffectService(
	pool *pgxpool.Pool,
	users repository.UserRepository,
	effects repository.EffectRepository,
	skills repository.SkillRepository,
	gear repository.GearRepository,
	inventory repository.InventoryRepository,
	engine *gamify.Effects,
	logger *slog.Logger,
) *EffectService {
	return &EffectService{
		pool:      pool,
		users:     users,
		effects:   effects,
		skills:    skills,
		gear:      gear,
		inventory: inventory,
		engine:    engine,
		logger:    logger,
	}
}

// Apply resolves a catalog effect and applies its logic to the user.
func (s *EffectService) Apply(ctx context.Context, userID, effectID uuid.UUID, ec domain.EffectContext) (*domain.User, error) {
	now := time.Now().UTC()

	var user *domain.User
	err := inTx(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		user, err = lockUser(ctx, tx, s.users, userID)
		if err != nil {
			return err
		}
		effect, err := s.effects.FindByID(ctx, tx, effectID)
		if err != nil {
			return err
		}
		if effect == nil {
			return domain.ErrNotFound("effect", effectID.String())
		}
		if err := s.engine.Apply(ctx, tx, user, effect.LogicKey, ec, now); err != nil {
			return err
		}
		return s.users.Save(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("effect applied", "user_id", userID, "effect_id", effectID)
	return user, nil
}

// UseSkill spends mana on an owned skill and applies its linked effect.
func (s *EffectService) UseSkill(ctx context.Context, userID, skillID uuid.UUID, ec domain.EffectContext) (*domain.User, error) {
	now := time.Now().UTC()

	var user *domain.User
	err := inTx(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		user, err = lockUser(ctx, tx, s.users, userID)
		if err != nil {
			return err
		}
		skill, err := s.skills.FindByID(ctx, tx, skillID)
		if err != nil {
			return err
		}
		if skill == nil {
			return domain.ErrNotFound("skill", skillID.String())
		}
		owned, err := s.skills.Owns(ctx, tx, userID, skillID)
		if err != nil {
			return err
		}
		if !owned {
			return domain.ErrForbidden("skill not owned")
		}
		if user.Mana < skill.ManaCost {
			return domain.ErrInsufficientResource("mana", user.Mana, skill.ManaCost)
		}
		user.Mana -= skill.ManaCost

		if skill.EffectID != nil {
			effect, err := s.effects.FindByID(ctx, tx, *skill.EffectID)
			if err != nil {
				return err
			}
			if effect == nil {
				return domain.ErrInvariant("skill references a missing effect")
			}
			if err := s.engine.Apply(ctx, tx, user, effect.LogicKey, ec, now); err != nil {
				return err
			}
		}
		return s.users.Save(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("skill used", "user_id", userID, "skill_id", skillID)
	return user, nil
}

// UseGear consumes a use of an owned gear and applies its linked effect.
// Non-consumable gear applies its effect without spending anything.
func (s *EffectService) UseGear(ctx context.Context, userID, gearID uuid.UUID, ec domain.EffectContext) (*domain.User, error) {
	now := time.Now().UTC()

	var user *domain.User
	err := inTx(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		user, err = lockUser(ctx, tx, s.users, userID)
		if err != nil {
			return err
		}
		item, err := s.inventory.FindByGear(ctx, tx, userID, gearID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound("inventory item", gearID.String())
		}
		gear, err := s.gear.FindByID(ctx, tx, gearID)
		if err != nil {
			return err
		}
		if gear == nil {
			return domain.ErrInvariant("inventory references a missing gear")
		}

		if gear.Consumable {
			if item.RemainingUses == nil || *item.RemainingUses <= 0 {
				return domain.ErrInsufficientResource("gear uses", 0, 1)
			}
			if err := s.inventory.SetRemainingUses(ctx, tx, item.ID, *item.RemainingUses-1); err != nil {
				return err
			}
		}

		if gear.EffectID != nil {
			effect, err := s.effects.FindByID(ctx, tx, *gear.EffectID)
			if err != nil {
				return err
			}
			if effect == nil {
				return domain.ErrInvariant("gear references a missing effect")
			}
			if err := s.engine.Apply(ctx, tx, user, effect.LogicKey, ec, now); err != nil {
				return err
			}
		}
		return s.users.Save(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("gear used", "user_id", userID, "gear_id", gearID)
	return user, nil
}

// ResetDailyMana refills the user's mana to the level-scaled daily amount.
func (s *EffectService) ResetDailyMana(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	var user *domain.User
	err := inTx(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		user, err = lockUser(ctx, tx, s.users, userID)
		if err != nil {
			return err
		}
		user.Mana = gamify.DailyMana(user.Level)
		return s.users.Save(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListCatalog returns the active effect catalog.
func (s *EffectService) ListCatalog(ctx context.Context) ([]domain.Effect, error) {
	return s.effects.ListActive(ctx, s.pool)
}
