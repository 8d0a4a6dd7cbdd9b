package service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lifequest/platform/internal/domain"
	"github.com/lifequest/platform/internal/repository"
)

// StoreService sells gear for coins and skills for gems. Purchases run
// under the user row lock so balances never go negative under concurrency.
type StoreService struct {
	pool      *pgxpool.Pool
	users     repository.UserRepository
	zones     repository.ZoneRepository
	gear      repository.GearRepository
	inventory repository.InventoryRepository
	skills    repository.SkillRepository
	logger    *slog.Logger
}

// NewStoreService creates a StoreService.
func NewStoreService(
	pool *pgxpool.Pool,
	users repository.UserRepository,
	zones repository.ZoneRepository,
	gear repository.GearRepository,
	inventory repository.InventoryRepository,
	skills repository.SkillRepository,
	logger *slog.Logger,
) *StoreService {
	return &StoreService{
		pool:      pool,
		users:     users,
		zones:     zones,
		gear:      gear,
		inventory: inventory,
		skills:    skills,
		logger:    logger,
	}
}

// Purchase is the outcome of a gear purchase, including the price actually
// paid after any discount.
type Purchase struct {
	Item      domain.InventoryItem `json:"item"`
	PricePaid int                  `json:"price_paid"`
}

// BuyGear purchases a gear for coins. An armed store discount is consumed
// by the purchase whether or not it was needed to afford it.
func (s *StoreService) BuyGear(ctx context.Context, userID, gearID uuid.UUID) (*Purchase, error) {
	now := time.Now().UTC()

	var purchase *Purchase
	err := inTx(ctx, s.pool, func(tx pgx.Tx) error {
		user, err := lockUser(ctx, tx, s.users, userID)
		if err != nil {
			return err
		}
		gear, err := s.gear.FindByID(ctx, tx, gearID)
		if err != nil {
			return err
		}
		if gear == nil {
			return domain.ErrNotFound("gear", gearID.String())
		}
		existing, err := s.inventory.FindByGear(ctx, tx, userID, gearID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrConflict("gear already owned")
		}

		price := gear.Cost
		if e := user.Effects.Get(domain.EffectDiscountStore, now); e != nil {
			price = int(math.Round(float64(price) * (1 - e.Value)))
			user.Effects.Clear(domain.EffectDiscountStore)
		}
		if user.Coins < price {
			return domain.ErrInsufficientResource("coins", user.Coins, price)
		}
		user.Coins -= price

		item := &domain.InventoryItem{
			ID:            uuid.New(),
			UserID:        userID,
			GearID:        gearID,
			RemainingUses: gear.MaxUses,
		}
		if err := s.inventory.Create(ctx, tx, item); err != nil {
			return err
		}
		if err := s.users.Save(ctx, tx, user); err != nil {
			return err
		}
		purchase = &Purchase{Item: *item, PricePaid: price}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("gear purchased", "user_id", userID, "gear_id", gearID, "price", purchase.PricePaid)
	return purchase, nil
}

// BuySkill purchases a skill. Personal skills cost the user's blue gems;
// zone skills cost yellow gems from the given zone.
func (s *StoreService) BuySkill(ctx context.Context, userID, skillID uuid.UUID, zoneID *uuid.UUID) error {
	err := inTx(ctx, s.pool, func(tx pgx.Tx) error {
		user, err := lockUser(ctx, tx, s.users, userID)
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
		if owned {
			return domain.ErrConflict("skill already owned")
		}
		if user.Level < skill.LevelRequired {
			return domain.ErrValidation("level too low for this skill")
		}

		if skill.IsZoneSkill {
			if zoneID == nil {
				return domain.ErrMissingContext("zone_id")
			}
			zone, err := s.zones.LockForUpdate(ctx, tx, *zoneID)
			if err != nil {
				return err
			}
			if zone == nil {
				return domain.ErrNotFound("zone", zoneID.String())
			}
			if zone.UserID != userID {
				return domain.ErrUnauthorized("zone belongs to another user")
			}
			if zone.YellowGems < domain.SkillCostYellowGems {
				return domain.ErrInsufficientResource("yellow gems", zone.YellowGems, domain.SkillCostYellowGems)
			}
			zone.YellowGems -= domain.SkillCostYellowGems
			if err := s.zones.Save(ctx, tx, zone); err != nil {
				return err
			}
		} else {
			if user.BlueGems < domain.SkillCostBlueGems {
				return domain.ErrInsufficientResource("blue gems", user.BlueGems, domain.SkillCostBlueGems)
			}
			user.BlueGems -= domain.SkillCostBlueGems
			if err := s.users.Save(ctx, tx, user); err != nil {
				return err
			}
		}
		return s.skills.Grant(ctx, tx, userID, skillID)
	})
	if err != nil {
		return err
	}
	s.logger.Info("skill purchased", "user_id", userID, "skill_id", skillID)
	return nil
}

// ListGear returns gear the user can still buy.
func (s *StoreService) ListGear(ctx context.Context, userID uuid.UUID) ([]domain.Gear, error) {
	return s.gear.ListAvailable(ctx, s.pool, userID)
}

// ListSkills returns skills the user can still buy.
func (s *StoreService) ListSkills(ctx context.Context, userID uuid.UUID) ([]domain.Skill, error) {
	return s.skills.ListAvailable(ctx, s.pool, userID)
}

// ListInventory returns the user's owned gear.
func (s *StoreService) ListInventory(ctx context.Context, userID uuid.UUID) ([]domain.InventoryItem, error) {
	return s.inventory.ListByUser(ctx, s.pool, userID)
}
