package gamify

import (
	"time"

	"github.com/google/uuid"
	"github.com/lifequest/platform/internal/domain"
)

// RewardBreakdown is the outcome of one completion before it is committed
// to progression: final energy and the xp/coins to credit.
type RewardBreakdown struct {
	Energy int `json:"energy"`
	XP     int `json:"xp"`
	Coins  int `json:"coins"`
}

// RewardResult is the full, committed result returned to callers.
type RewardResult struct {
	Energy      int            `json:"energy"`
	XP          int            `json:"xp"`
	Coins       int            `json:"coins"`
	LevelUps    int            `json:"level_ups"`
	UserLevel   int            `json:"user_level"`
	ZoneLevelUp *LevelUpResult `json:"zone_level_up,omitempty"`
}

// dateKey formats a day for the daily-first-completion bookmark.
func dateKey(t time.Time) string { return t.Format("2006-01-02") }

// ComputeReward runs the fixed modifier pipeline for one completion. It
// mutates the user's effect state (one-shot flags are consumed, the
// stackable counter advances, expired modifiers reset) and bumps the user's
// energy balance, but does not touch xp/coins/level — the caller commits the
// returned breakdown via ApplyUserProgress.
//
// The order is load-bearing: multipliers compound in sequence, so doubling
// before the xp multiplier is not the same as after.
//
//  1. baseline: energy from the item, coins mirror xp
//  2. double_energy_next (one-shot)
//  3. stackable energy: add count, then increment; reset when expired
//  4. (caller appends the energy log entry)
//  5. energy credited to the user's balance
//  6. daily first completion: double once per day, re-arming on a new day
//  7. double rewards week
//  8. xp multiplier, floored; reset to 1.0 once expired
func ComputeReward(u *domain.User, item domain.CompletionItem, now time.Time) RewardBreakdown {
	energy := item.Energy
	xp := item.Points
	coins := xp

	if e := u.Effects.Get(domain.EffectDoubleEnergyNext, now); e != nil {
		energy *= 2
		u.Effects.Clear(domain.EffectDoubleEnergyNext)
	}

	if e, ok := u.Effects.Active[domain.EffectStackableEnergyBonus]; ok {
		if e.Expired(now) {
			u.Effects.Clear(domain.EffectStackableEnergyBonus)
		} else {
			// Post-increment: the Nth completion in the window adds N-1.
			energy += e.Count
			e.Count++
		}
	}

	u.Energy += energy

	today := dateKey(now)
	if e, ok := u.Effects.Active[domain.EffectDailyFirstCompletion]; ok {
		switch {
		case e.Date == today && !e.Used:
			xp *= 2
			coins *= 2
			e.Used = true
		case e.Date != today:
			// New day: re-arm, and this completion is the first.
			e.Date = today
			e.Used = true
			xp *= 2
			coins *= 2
		}
	}

	if e := u.Effects.Get(domain.EffectDoubleRewardsWeek, now); e != nil {
		xp *= 2
		coins *= 2
	}

	if e, ok := u.Effects.Active[domain.EffectXPMultiplierDaily]; ok {
		if e.Expired(now) {
			u.Effects.Clear(domain.EffectXPMultiplierDaily)
		} else {
			xp = int(float64(xp) * e.Value)
		}
	}

	return RewardBreakdown{Energy: energy, XP: xp, Coins: coins}
}

// ZoneCoinBonus applies the zone coin multiplier, if armed for the item's
// zone, to an already-computed coin amount. Only zone-tied completions
// (projects) reach this.
func ZoneCoinBonus(u *domain.User, zoneID *uuid.UUID, coins int, now time.Time) int {
	if zoneID == nil {
		return coins
	}
	if m, ok := u.Effects.ZoneModifierFor(*zoneID, domain.ZoneModCoinMultiplier, now); ok {
		return int(float64(coins) * m.Value)
	}
	return coins
}
