package gamify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateLoginStreak(t *testing.T) {
	now := time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC)

	t.Run("first login starts at one", func(t *testing.T) {
		u := newTestUser()
		changed := UpdateLoginStreak(u, now)

		assert.True(t, changed)
		assert.Equal(t, 1, u.LoginStreak)
		require.NotNil(t, u.LastLoginDate)
		assert.True(t, u.LastLoginDate.Equal(now))
	})

	t.Run("second login the same day is a no-op", func(t *testing.T) {
		u := newTestUser()
		earlier := now.Add(-6 * time.Hour)
		u.LoginStreak = 3
		u.LastLoginDate = &earlier

		changed := UpdateLoginStreak(u, now)

		assert.False(t, changed)
		assert.Equal(t, 3, u.LoginStreak)
		require.NotNil(t, u.LastLoginDate)
		assert.True(t, u.LastLoginDate.Equal(now))
	})

	t.Run("consecutive day extends the streak", func(t *testing.T) {
		u := newTestUser()
		yesterday := now.AddDate(0, 0, -1)
		u.LoginStreak = 3
		u.LastLoginDate = &yesterday

		changed := UpdateLoginStreak(u, now)

		assert.True(t, changed)
		assert.Equal(t, 4, u.LoginStreak)
	})

	t.Run("a gap restarts the streak", func(t *testing.T) {
		u := newTestUser()
		lastWeek := now.AddDate(0, 0, -5)
		u.LoginStreak = 12
		u.LastLoginDate = &lastWeek

		changed := UpdateLoginStreak(u, now)

		assert.True(t, changed)
		assert.Equal(t, 1, u.LoginStreak)
	})
}
