package gamify

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifequest/platform/internal/domain"
)

func newTestEffects(habits *fakeHabits, projects *fakeProjects, zones *fakeZones, gear *fakeGear, inv *fakeInventory) *Effects {
	if habits == nil {
		habits = &fakeHabits{}
	}
	if projects == nil {
		projects = &fakeProjects{}
	}
	if zones == nil {
		zones = &fakeZones{}
	}
	if gear == nil {
		gear = &fakeGear{}
	}
	if inv == nil {
		inv = &fakeInventory{}
	}
	return NewEffects(habits, projects, zones, gear, inv)
}

func appErrCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func TestEffectsApply(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)
	eng := newTestEffects(nil, nil, nil, nil, nil)

	t.Run("energy boost and reduction are immediate", func(t *testing.T) {
		u := newTestUser()
		require.NoError(t, eng.Apply(ctx, nil, u, domain.EffectEnergyBoost, domain.EffectContext{}, now))
		assert.Equal(t, 10, u.Energy)

		require.NoError(t, eng.Apply(ctx, nil, u, domain.EffectEnergyReduction, domain.EffectContext{}, now))
		assert.Equal(t, -5, u.Energy)
	})

	t.Run("xp multiplier arms until end of day", func(t *testing.T) {
		u := newTestUser()
		require.NoError(t, eng.Apply(ctx, nil, u, domain.EffectXPMultiplierDaily, domain.EffectContext{}, now))

		e := u.Effects.Get(domain.EffectXPMultiplierDaily, now)
		require.NotNil(t, e)
		assert.Equal(t, 1.5, e.Value)
		require.NotNil(t, e.ExpiresAt)
		assert.Equal(t, 23, e.ExpiresAt.Hour())
		assert.Equal(t, now.Day(), e.ExpiresAt.Day())
	})

	t.Run("stackable bonus starts at zero", func(t *testing.T) {
		u := newTestUser()
		require.NoError(t, eng.Apply(ctx, nil, u, domain.EffectStackableEnergyBonus, domain.EffectContext{}, now))

		e := u.Effects.Get(domain.EffectStackableEnergyBonus, now)
		require.NotNil(t, e)
		assert.Equal(t, 0, e.Count)
		require.NotNil(t, e.ExpiresAt)
		assert.True(t, e.ExpiresAt.Equal(now.Add(12*time.Hour)))
	})

	t.Run("daily first arms for today unused", func(t *testing.T) {
		u := newTestUser()
		require.NoError(t, eng.Apply(ctx, nil, u, domain.EffectDailyFirstCompletion, domain.EffectContext{}, now))

		e := u.Effects.Active[domain.EffectDailyFirstCompletion]
		require.NotNil(t, e)
		assert.Equal(t, "2026-08-28", e.Date)
		assert.False(t, e.Used)
	})

	t.Run("personal pardon bumps the login streak", func(t *testing.T) {
		u := newTestUser()
		u.LoginStreak = 4
		require.NoError(t, eng.Apply(ctx, nil, u, domain.EffectSkipPenaltyUser, domain.EffectContext{}, now))
		assert.Equal(t, 5, u.LoginStreak)
	})

	t.Run("placebo does nothing", func(t *testing.T) {
		u := newTestUser()
		require.NoError(t, eng.Apply(ctx, nil, u, domain.EffectPlacebo, domain.EffectContext{}, now))
		assert.Equal(t, 0, u.Energy)
		assert.Empty(t, u.Effects.Active)
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		u := newTestUser()
		err := eng.Apply(ctx, nil, u, domain.EffectKind("time_travel"), domain.EffectContext{}, now)
		assert.Equal(t, "UNKNOWN_EFFECT", appErrCode(t, err))
	})
}

func TestEffectsHabitAutocomplete(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("requires habit id", func(t *testing.T) {
		eng := newTestEffects(nil, nil, nil, nil, nil)
		err := eng.Apply(ctx, nil, newTestUser(), domain.EffectHabitAutocomplete, domain.EffectContext{}, now)
		assert.Equal(t, "MISSING_CONTEXT", appErrCode(t, err))
	})

	t.Run("rejects habits of other users", func(t *testing.T) {
		u := newTestUser()
		h := &domain.Habit{ID: uuid.New(), UserID: uuid.New(), Streak: 2}
		habits := &fakeHabits{habits: map[uuid.UUID]*domain.Habit{h.ID: h}}
		eng := newTestEffects(habits, nil, nil, nil, nil)

		err := eng.Apply(ctx, nil, u, domain.EffectHabitAutocomplete, domain.EffectContext{HabitID: &h.ID}, now)
		assert.Equal(t, "NOT_FOUND", appErrCode(t, err))
	})

	t.Run("checks the habit without a reward", func(t *testing.T) {
		u := newTestUser()
		h := &domain.Habit{ID: uuid.New(), UserID: u.ID, Streak: 2, TotalChecks: 9}
		habits := &fakeHabits{habits: map[uuid.UUID]*domain.Habit{h.ID: h}}
		eng := newTestEffects(habits, nil, nil, nil, nil)

		require.NoError(t, eng.Apply(ctx, nil, u, domain.EffectHabitAutocomplete, domain.EffectContext{HabitID: &h.ID}, now))
		assert.Equal(t, 3, h.Streak)
		assert.Equal(t, 10, h.TotalChecks)
		require.Len(t, habits.saved, 1)
		assert.Equal(t, 0, u.Energy)
	})
}

func TestEffectsProjectEnergyBoost(t *testing.T) {
	projects := &fakeProjects{}
	eng := newTestEffects(nil, projects, nil, nil, nil)

	err := eng.Apply(context.Background(), nil, newTestUser(), domain.EffectProjectEnergyBoost, domain.EffectContext{}, time.Now())

	require.NoError(t, err)
	assert.Equal(t, 1, projects.boosted)
	assert.Equal(t, 10, projects.delta)
}

func TestEffectsZoneModifiers(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)

	t.Run("requires zone id", func(t *testing.T) {
		eng := newTestEffects(nil, nil, nil, nil, nil)
		err := eng.Apply(ctx, nil, newTestUser(), domain.EffectZoneEnergyProtection, domain.EffectContext{}, now)
		assert.Equal(t, "MISSING_CONTEXT", appErrCode(t, err))
	})

	t.Run("rejects zones of other users", func(t *testing.T) {
		z := &domain.Zone{ID: uuid.New(), UserID: uuid.New()}
		zones := &fakeZones{zones: map[uuid.UUID]*domain.Zone{z.ID: z}}
		eng := newTestEffects(nil, nil, zones, nil, nil)

		err := eng.Apply(ctx, nil, newTestUser(), domain.EffectCoinMultiplierZone, domain.EffectContext{ZoneID: &z.ID}, now)
		assert.Equal(t, "NOT_FOUND", appErrCode(t, err))
	})

	t.Run("arms protection and coin multiplier per zone", func(t *testing.T) {
		u := newTestUser()
		z := &domain.Zone{ID: uuid.New(), UserID: u.ID}
		zones := &fakeZones{zones: map[uuid.UUID]*domain.Zone{z.ID: z}}
		eng := newTestEffects(nil, nil, zones, nil, nil)

		require.NoError(t, eng.Apply(ctx, nil, u, domain.EffectZoneEnergyProtection, domain.EffectContext{ZoneID: &z.ID}, now))
		require.NoError(t, eng.Apply(ctx, nil, u, domain.EffectCoinMultiplierZone, domain.EffectContext{ZoneID: &z.ID}, now))

		prot, ok := u.Effects.ZoneModifierFor(z.ID, domain.ZoneModEnergyProtection, now)
		require.True(t, ok)
		assert.Equal(t, 0.5, prot.Value)

		coin, ok := u.Effects.ZoneModifierFor(z.ID, domain.ZoneModCoinMultiplier, now)
		require.True(t, ok)
		assert.Equal(t, 1.25, coin.Value)
		assert.True(t, coin.ExpiresAt.Equal(now.Add(7*24*time.Hour)))
	})
}

func TestEffectsGearAutoRepair(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("requires gear id", func(t *testing.T) {
		eng := newTestEffects(nil, nil, nil, nil, nil)
		err := eng.Apply(ctx, nil, newTestUser(), domain.EffectGearAutoRepair, domain.EffectContext{}, now)
		assert.Equal(t, "MISSING_CONTEXT", appErrCode(t, err))
	})

	t.Run("requires the gear in inventory", func(t *testing.T) {
		gearID := uuid.New()
		eng := newTestEffects(nil, nil, nil, nil, &fakeInventory{})
		err := eng.Apply(ctx, nil, newTestUser(), domain.EffectGearAutoRepair, domain.EffectContext{GearID: &gearID}, now)
		assert.Equal(t, "NOT_FOUND", appErrCode(t, err))
	})

	t.Run("restores a consumable to full uses", func(t *testing.T) {
		u := newTestUser()
		maxUses := 3
		g := &domain.Gear{ID: uuid.New(), MaxUses: &maxUses, Consumable: true}
		item := &domain.InventoryItem{ID: uuid.New(), UserID: u.ID, GearID: g.ID}
		one := 1
		item.RemainingUses = &one

		gear := &fakeGear{gear: map[uuid.UUID]*domain.Gear{g.ID: g}}
		inv := &fakeInventory{items: map[uuid.UUID]*domain.InventoryItem{g.ID: item}}
		eng := newTestEffects(nil, nil, nil, gear, inv)

		require.NoError(t, eng.Apply(ctx, nil, u, domain.EffectGearAutoRepair, domain.EffectContext{GearID: &g.ID}, now))
		assert.Equal(t, 3, inv.setTo[item.ID])
	})

	t.Run("non-consumable gear is left alone", func(t *testing.T) {
		u := newTestUser()
		g := &domain.Gear{ID: uuid.New()}
		item := &domain.InventoryItem{ID: uuid.New(), UserID: u.ID, GearID: g.ID}

		gear := &fakeGear{gear: map[uuid.UUID]*domain.Gear{g.ID: g}}
		inv := &fakeInventory{items: map[uuid.UUID]*domain.InventoryItem{g.ID: item}}
		eng := newTestEffects(nil, nil, nil, gear, inv)

		require.NoError(t, eng.Apply(ctx, nil, u, domain.EffectGearAutoRepair, domain.EffectContext{GearID: &g.ID}, now))
		assert.Empty(t, inv.setTo)
	})
}
