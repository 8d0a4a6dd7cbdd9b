package gamify

import (
	"time"

	"github.com/lifequest/platform/internal/domain"
)

// baseEnergyLoss is the energy penalty for failing a habit.
const baseEnergyLoss = 10

// PenaltyOutcome describes what a habit failure actually cost after the
// protection effects had their say.
type PenaltyOutcome struct {
	Skipped     bool `json:"skipped"`      // skip_penalty consumed, nothing else happened
	EnergyLost  int  `json:"energy_lost"`  // after shield / zone protection
	StreakReset bool `json:"streak_reset"` // false when weekend protection held
}

// isWeekend reports Saturday or Sunday.
func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ApplyHabitFailure runs the penalty path for a failed habit, consulting the
// protection effects in a fixed order:
//
//  1. skip_penalty cancels exactly one pending penalty (one-shot).
//  2. shield_energy_loss suppresses the energy loss entirely while armed.
//  3. zone energy protection scales the loss for habits in that zone.
//  4. no_habit_loss_weekend preserves the streak on weekends.
//
// Mutates the user's energy/effect state and the habit's streak; the caller
// persists both.
func ApplyHabitFailure(u *domain.User, habit *domain.Habit, now time.Time) PenaltyOutcome {
	if e := u.Effects.Get(domain.EffectSkipPenalty, now); e != nil {
		u.Effects.Clear(domain.EffectSkipPenalty)
		return PenaltyOutcome{Skipped: true}
	}

	loss := baseEnergyLoss
	if e := u.Effects.Get(domain.EffectShieldEnergyLoss, now); e != nil {
		loss = 0
	} else if habit.ZoneID != nil {
		if m, ok := u.Effects.ZoneModifierFor(*habit.ZoneID, domain.ZoneModEnergyProtection, now); ok {
			loss = int(float64(loss) * m.Value)
		}
	}
	u.Energy -= loss

	out := PenaltyOutcome{EnergyLost: loss, StreakReset: true}
	if isWeekend(now) {
		if e := u.Effects.Get(domain.EffectNoHabitLossWeekend, now); e != nil {
			out.StreakReset = false
		}
	}
	if out.StreakReset {
		habit.Streak = 0
	}
	return out
}
