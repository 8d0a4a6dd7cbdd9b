package domain

import (
	"time"

	"github.com/google/uuid"
)

// Gear is a store item. Consumable gear carries a use budget; using it
// applies its linked effect.
type Gear struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Description string    `json:"description,omitempty"`
	Cost       int        `json:"cost"`
	MaxUses    *int       `json:"max_uses,omitempty"`
	Consumable bool       `json:"consumable"`
	Rarity     string     `json:"rarity,omitempty"`
	EffectID   *uuid.UUID `json:"effect_id,omitempty"`
	Deleted    bool       `json:"-"`
}

// InventoryItem is a user's owned instance of a gear.
type InventoryItem struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	GearID        uuid.UUID `json:"gear_id"`
	RemainingUses *int      `json:"remaining_uses,omitempty"`
	AcquiredAt    time.Time `json:"acquired_at"`
	Deleted       bool      `json:"-"`
}

// Skill is a purchasable ability: using it costs mana and applies its
// linked effect. Zone skills are bought with a zone's yellow gems, personal
// skills with the user's blue gems.
type Skill struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	LevelRequired int        `json:"level_required"`
	ManaCost      int        `json:"mana_cost"`
	IsZoneSkill   bool       `json:"is_zone_skill"`
	EffectID      *uuid.UUID `json:"effect_id,omitempty"`
	Deleted       bool       `json:"-"`
}

// Gem costs for skill purchases.
const (
	SkillCostBlueGems   = 1
	SkillCostYellowGems = 3
)

// StoreDiscountValue is the fraction taken off a gear purchase by the
// one-shot store discount effect.
const StoreDiscountValue = 0.2
