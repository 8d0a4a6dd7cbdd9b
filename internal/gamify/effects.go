package gamify

import (
	"context"
	"time"

	"github.com/lifequest/platform/internal/domain"
	"github.com/lifequest/platform/internal/repository"
)

// Effect magnitudes and durations, as shipped in the catalog.
const (
	energyBoostAmount     = 10
	energyReductionAmount = 15
	xpMultiplierValue     = 1.5
	zoneEnergyProtection  = 0.5
	zoneCoinMultiplier    = 1.25

	shieldDuration  = 3 * 24 * time.Hour
	weekDuration    = 7 * 24 * time.Hour
	stackableWindow = 12 * time.Hour
)

// Effects applies catalog effects to a user. Most kinds are pure transitions
// on the user's effect state; a few mutate target entities through the
// injected repositories.
type Effects struct {
	habits    repository.HabitRepository
	projects  repository.ProjectRepository
	zones     repository.ZoneRepository
	gear      repository.GearRepository
	inventory repository.InventoryRepository
}

// NewEffects creates the effect engine.
func NewEffects(
	habits repository.HabitRepository,
	projects repository.ProjectRepository,
	zones repository.ZoneRepository,
	gear repository.GearRepository,
	inventory repository.InventoryRepository,
) *Effects {
	return &Effects{
		habits:    habits,
		projects:  projects,
		zones:     zones,
		gear:      gear,
		inventory: inventory,
	}
}

// endOfDay is the last instant of now's calendar day, used by the daily
// effects.
func endOfDay(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, now.Location())
}

// Apply runs one effect against the user (and its targets, for the kinds
// that have them), mutating state in place. The caller persists the user and
// owns the transaction. Unknown kinds fail with UNKNOWN_EFFECT; kinds that
// need a contextual id fail with MISSING_CONTEXT when it is absent and
// NOT_FOUND when it does not resolve to something the user owns.
func (e *Effects) Apply(ctx context.Context, db repository.DBTX, user *domain.User, kind domain.EffectKind, ec domain.EffectContext, now time.Time) error {
	switch kind {
	case domain.EffectEnergyBoost:
		user.Energy += energyBoostAmount

	case domain.EffectEnergyReduction:
		user.Energy -= energyReductionAmount

	case domain.EffectDoubleEnergyNext:
		user.Effects.Arm(&domain.ActiveEffect{Kind: domain.EffectDoubleEnergyNext})

	case domain.EffectXPMultiplierDaily:
		expiry := endOfDay(now)
		user.Effects.Arm(&domain.ActiveEffect{
			Kind:      domain.EffectXPMultiplierDaily,
			ExpiresAt: &expiry,
			Value:     xpMultiplierValue,
		})

	case domain.EffectDiscountStore:
		user.Effects.Arm(&domain.ActiveEffect{
			Kind:  domain.EffectDiscountStore,
			Value: domain.StoreDiscountValue,
		})

	case domain.EffectHabitAutocomplete:
		return e.habitAutocomplete(ctx, db, user, ec)

	case domain.EffectProjectEnergyBoost:
		_, err := e.projects.AddEnergyToActive(ctx, db, user.ID, energyBoostAmount)
		return err

	case domain.EffectSkipPenalty:
		expiry := endOfDay(now)
		user.Effects.Arm(&domain.ActiveEffect{
			Kind:      domain.EffectSkipPenalty,
			ExpiresAt: &expiry,
		})

	case domain.EffectSkipPenaltyUser:
		user.LoginStreak++

	case domain.EffectShieldEnergyLoss:
		expiry := now.Add(shieldDuration)
		user.Effects.Arm(&domain.ActiveEffect{
			Kind:      domain.EffectShieldEnergyLoss,
			ExpiresAt: &expiry,
		})

	case domain.EffectDoubleRewardsWeek:
		expiry := now.Add(weekDuration)
		user.Effects.Arm(&domain.ActiveEffect{
			Kind:      domain.EffectDoubleRewardsWeek,
			ExpiresAt: &expiry,
		})

	case domain.EffectZoneEnergyProtection:
		return e.armZoneModifier(ctx, db, user, ec, domain.ZoneModEnergyProtection, zoneEnergyProtection, now)

	case domain.EffectCoinMultiplierZone:
		return e.armZoneModifier(ctx, db, user, ec, domain.ZoneModCoinMultiplier, zoneCoinMultiplier, now)

	case domain.EffectGearAutoRepair:
		return e.gearAutoRepair(ctx, db, user, ec)

	case domain.EffectNoHabitLossWeekend:
		expiry := now.Add(weekDuration)
		user.Effects.Arm(&domain.ActiveEffect{
			Kind:      domain.EffectNoHabitLossWeekend,
			ExpiresAt: &expiry,
		})

	case domain.EffectStackableEnergyBonus:
		expiry := now.Add(stackableWindow)
		user.Effects.Arm(&domain.ActiveEffect{
			Kind:      domain.EffectStackableEnergyBonus,
			ExpiresAt: &expiry,
			Count:     0,
		})

	case domain.EffectDailyFirstCompletion:
		user.Effects.Arm(&domain.ActiveEffect{
			Kind: domain.EffectDailyFirstCompletion,
			Date: dateKey(now),
			Used: false,
		})

	case domain.EffectPlacebo:
		// Cosmetic items only.

	default:
		return domain.ErrUnknownEffect(string(kind))
	}
	return nil
}

func (e *Effects) habitAutocomplete(ctx context.Context, db repository.DBTX, user *domain.User, ec domain.EffectContext) error {
	if ec.HabitID == nil {
		return domain.ErrMissingContext("habit_id")
	}
	habit, err := e.habits.FindByID(ctx, db, *ec.HabitID)
	if err != nil {
		return err
	}
	if habit == nil || habit.UserID != user.ID {
		return domain.ErrNotFound("habit", ec.HabitID.String())
	}
	habit.Streak++
	habit.TotalChecks++
	return e.habits.Save(ctx, db, habit)
}

func (e *Effects) armZoneModifier(ctx context.Context, db repository.DBTX, user *domain.User, ec domain.EffectContext, mod string, value float64, now time.Time) error {
	if ec.ZoneID == nil {
		return domain.ErrMissingContext("zone_id")
	}
	zone, err := e.zones.FindByID(ctx, db, *ec.ZoneID)
	if err != nil {
		return err
	}
	if zone == nil || zone.UserID != user.ID {
		return domain.ErrNotFound("zone", ec.ZoneID.String())
	}
	user.Effects.ArmZone(zone.ID, mod, domain.ZoneModifier{
		ExpiresAt: now.Add(weekDuration),
		Value:     value,
	})
	return nil
}

func (e *Effects) gearAutoRepair(ctx context.Context, db repository.DBTX, user *domain.User, ec domain.EffectContext) error {
	if ec.GearID == nil {
		return domain.ErrMissingContext("gear_id")
	}
	item, err := e.inventory.FindByGear(ctx, db, user.ID, *ec.GearID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound("inventory item", ec.GearID.String())
	}
	g, err := e.gear.FindByID(ctx, db, *ec.GearID)
	if err != nil {
		return err
	}
	if g == nil || g.MaxUses == nil {
		return nil
	}
	return e.inventory.SetRemainingUses(ctx, db, item.ID, *g.MaxUses)
}
