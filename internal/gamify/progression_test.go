package gamify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lifequest/platform/internal/domain"
)

func TestApplyUserProgress(t *testing.T) {
	t.Run("below threshold keeps level", func(t *testing.T) {
		u := newTestUser()
		res := ApplyUserProgress(u, 150, 30)

		assert.False(t, res.LeveledUp)
		assert.Equal(t, 1, u.Level)
		assert.Equal(t, 150, u.XP)
		assert.Equal(t, 30, u.Coins)
		assert.Equal(t, 0, u.BlueGems)
	})

	t.Run("exact threshold levels up with one gem", func(t *testing.T) {
		u := newTestUser()
		res := ApplyUserProgress(u, 200, 0)

		assert.True(t, res.LeveledUp)
		assert.Equal(t, 2, res.Level)
		assert.Equal(t, 1, res.BonusGems)
		assert.Equal(t, 2, u.Level)
		assert.Equal(t, 1, u.BlueGems)
	})

	t.Run("large gain catches up multiple levels", func(t *testing.T) {
		u := newTestUser()
		res := ApplyUserProgress(u, 500, 0)

		// Cumulative thresholds: 200, 300, 400, 500.
		assert.Equal(t, 5, u.Level)
		assert.Equal(t, 4, u.BlueGems)
		assert.Equal(t, 4, res.BonusGems)
	})

	t.Run("xp accumulates across gains", func(t *testing.T) {
		u := newTestUser()
		ApplyUserProgress(u, 150, 0)
		res := ApplyUserProgress(u, 60, 0)

		assert.Equal(t, 210, u.XP)
		assert.True(t, res.LeveledUp)
		assert.Equal(t, 2, u.Level)
	})
}

func TestApplyZoneProgress(t *testing.T) {
	t.Run("zone track uses its own thresholds", func(t *testing.T) {
		z := &domain.Zone{Level: 1}
		res := ApplyZoneProgress(z, 100)

		assert.True(t, res.LeveledUp)
		assert.Equal(t, 2, z.Level)
		assert.Equal(t, 1, z.YellowGems)
	})

	t.Run("below zone threshold keeps level", func(t *testing.T) {
		z := &domain.Zone{Level: 1}
		res := ApplyZoneProgress(z, 99)

		assert.False(t, res.LeveledUp)
		assert.Equal(t, 1, z.Level)
		assert.Equal(t, 0, z.YellowGems)
	})

	t.Run("multi-level zone jump", func(t *testing.T) {
		z := &domain.Zone{Level: 1}
		ApplyZoneProgress(z, 250)

		// Cumulative thresholds: 100, 150, 200, 250.
		assert.Equal(t, 5, z.Level)
		assert.Equal(t, 4, z.YellowGems)
	})
}

func TestDailyMana(t *testing.T) {
	assert.Equal(t, 120, DailyMana(1))
	assert.Equal(t, 200, DailyMana(5))
	assert.Equal(t, 300, DailyMana(10))
}
