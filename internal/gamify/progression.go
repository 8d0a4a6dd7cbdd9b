// Package gamify implements the gamification rule engine: the effect
// catalog, the reward computation pipeline, the progression ledger and the
// achievement evaluator. State transitions are pure functions over domain
// structs wherever possible; the caller owns the surrounding transaction.
package gamify

import (
	"github.com/lifequest/platform/internal/domain"
)

// UserXPThreshold is the total XP required to hold the given level.
func UserXPThreshold(level int) int { return 100 * level }

// ZoneXPThreshold is the zone-track equivalent.
func ZoneXPThreshold(level int) int { return 50 * level }

// LevelUpResult reports the outcome of committing xp/coins to a
// progression account.
type LevelUpResult struct {
	Level     int  `json:"level"`
	XP        int  `json:"xp"`
	Coins     int  `json:"coins"`
	BonusGems int  `json:"bonus_gems"`
	LeveledUp bool `json:"leveled_up"`
}

// ApplyUserProgress adds xp and coins to the user and runs the level
// catch-up loop: one blue gem per level gained. The loop handles multi-level
// jumps from a single large gain; it terminates because the threshold is
// strictly increasing.
func ApplyUserProgress(u *domain.User, xpGained, coinsGained int) LevelUpResult {
	u.XP += xpGained
	u.Coins += coinsGained

	res := LevelUpResult{}
	for u.XP >= UserXPThreshold(u.Level+1) {
		u.Level++
		u.BlueGems++
		res.BonusGems++
		res.LeveledUp = true
	}

	res.Level = u.Level
	res.XP = u.XP
	res.Coins = u.Coins
	return res
}

// ApplyZoneProgress adds xp to a zone's own track: one yellow gem per level
// gained, with the zone threshold function.
func ApplyZoneProgress(z *domain.Zone, xpGained int) LevelUpResult {
	z.XP += xpGained

	res := LevelUpResult{}
	for z.XP >= ZoneXPThreshold(z.Level+1) {
		z.Level++
		z.YellowGems++
		res.BonusGems++
		res.LeveledUp = true
	}

	res.Level = z.Level
	res.XP = z.XP
	return res
}

// DailyMana is the mana pool a user refills to on the daily reset.
func DailyMana(level int) int { return 100 + 20*level }
