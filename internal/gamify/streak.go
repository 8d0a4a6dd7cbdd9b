package gamify

import (
	"time"

	"github.com/lifequest/platform/internal/domain"
)

// sameDay compares two instants by calendar day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// UpdateLoginStreak advances the user's login streak for a login happening
// at now: a login the day after the last one extends the streak, a second
// login on the same day changes nothing, anything else restarts at 1.
// Reports whether the streak changed.
func UpdateLoginStreak(u *domain.User, now time.Time) bool {
	defer func() {
		t := now
		u.LastLoginDate = &t
	}()

	if u.LastLoginDate != nil {
		last := *u.LastLoginDate
		if sameDay(last, now) {
			return false
		}
		if sameDay(last.AddDate(0, 0, 1), now) {
			u.LoginStreak++
			return true
		}
	}
	u.LoginStreak = 1
	return true
}
