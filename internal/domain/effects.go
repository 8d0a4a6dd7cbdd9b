package domain

import (
	"time"

	"github.com/google/uuid"
)

// EffectKind identifies a catalog effect. The set is closed: the gamify
// engine dispatches on it exhaustively and rejects anything else.
type EffectKind string

const (
	EffectEnergyBoost          EffectKind = "energy_boost"
	EffectEnergyReduction      EffectKind = "energy_reduction"
	EffectDoubleEnergyNext     EffectKind = "double_energy_next"
	EffectXPMultiplierDaily    EffectKind = "xp_multiplier_daily"
	EffectDiscountStore        EffectKind = "discount_store"
	EffectHabitAutocomplete    EffectKind = "habit_autocomplete"
	EffectProjectEnergyBoost   EffectKind = "project_energy_boost"
	EffectSkipPenalty          EffectKind = "skip_penalty"
	EffectSkipPenaltyUser      EffectKind = "skip_penalty_user"
	EffectShieldEnergyLoss     EffectKind = "shield_energy_loss"
	EffectDoubleRewardsWeek    EffectKind = "double_rewards_week"
	EffectZoneEnergyProtection EffectKind = "zone_energy_protection"
	EffectCoinMultiplierZone   EffectKind = "coin_multiplier_zone"
	EffectGearAutoRepair       EffectKind = "gear_auto_repair"
	EffectNoHabitLossWeekend   EffectKind = "no_habit_loss_weekend"
	EffectStackableEnergyBonus EffectKind = "stackable_energy_bonus"
	EffectDailyFirstCompletion EffectKind = "daily_first_completion_bonus"
	EffectPlacebo              EffectKind = "placebo"
)

// Zone-scoped modifier kinds stored under EffectState.Zones.
const (
	ZoneModEnergyProtection = "energy_protection"
	ZoneModCoinMultiplier   = "coin_multiplier"
)

// ActiveEffect is one armed modifier on a user. Which fields are meaningful
// depends on the kind: multipliers use Value, the stackable bonus uses Count,
// the daily-first bonus uses Date/Used. A nil ExpiresAt means the effect does
// not time out on its own.
type ActiveEffect struct {
	Kind      EffectKind `json:"kind"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Value     float64    `json:"value,omitempty"`
	Count     int        `json:"count,omitempty"`
	Date      string     `json:"date,omitempty"` // YYYY-MM-DD, daily_first_completion only
	Used      bool       `json:"used,omitempty"`
}

// Expired reports whether the effect has a deadline that has passed.
func (e *ActiveEffect) Expired(now time.Time) bool {
	return e.ExpiresAt != nil && now.After(*e.ExpiresAt)
}

// ZoneModifier is a zone-scoped effect value with its own expiry.
type ZoneModifier struct {
	ExpiresAt time.Time `json:"expires_at"`
	Value     float64   `json:"value"`
}

// EffectState holds every armed modifier for a user. It is persisted as a
// single JSONB column. Active is keyed by effect kind; Zones is keyed by
// zone id, then modifier kind.
type EffectState struct {
	Active map[EffectKind]*ActiveEffect       `json:"active,omitempty"`
	Zones  map[string]map[string]ZoneModifier `json:"zones,omitempty"`
}

// NewEffectState returns an empty, usable effect state.
func NewEffectState() EffectState {
	return EffectState{
		Active: make(map[EffectKind]*ActiveEffect),
		Zones:  make(map[string]map[string]ZoneModifier),
	}
}

// Arm installs or replaces the effect for its kind.
func (s *EffectState) Arm(e *ActiveEffect) {
	if s.Active == nil {
		s.Active = make(map[EffectKind]*ActiveEffect)
	}
	s.Active[e.Kind] = e
}

// Clear removes the effect for the given kind, if present.
func (s *EffectState) Clear(kind EffectKind) {
	delete(s.Active, kind)
}

// Get returns the armed effect for kind if it exists and has not expired.
// An effect found past its expiry is dropped from the state and nil is
// returned: a modifier observed past its expiry is inactive.
func (s *EffectState) Get(kind EffectKind, now time.Time) *ActiveEffect {
	e, ok := s.Active[kind]
	if !ok {
		return nil
	}
	if e.Expired(now) {
		delete(s.Active, kind)
		return nil
	}
	return e
}

// ArmZone installs a zone-scoped modifier.
func (s *EffectState) ArmZone(zoneID uuid.UUID, mod string, m ZoneModifier) {
	if s.Zones == nil {
		s.Zones = make(map[string]map[string]ZoneModifier)
	}
	key := zoneID.String()
	if s.Zones[key] == nil {
		s.Zones[key] = make(map[string]ZoneModifier)
	}
	s.Zones[key][mod] = m
}

// ZoneModifierFor returns the unexpired modifier of the given kind for the
// zone, or false if absent or past its expiry.
func (s *EffectState) ZoneModifierFor(zoneID uuid.UUID, mod string, now time.Time) (ZoneModifier, bool) {
	zm, ok := s.Zones[zoneID.String()]
	if !ok {
		return ZoneModifier{}, false
	}
	m, ok := zm[mod]
	if !ok || now.After(m.ExpiresAt) {
		return ZoneModifier{}, false
	}
	return m, true
}

// EffectContext carries the optional contextual identifiers some effects
// need. Effects that require one fail with MISSING_CONTEXT when it is nil.
type EffectContext struct {
	HabitID *uuid.UUID `json:"habit_id,omitempty"`
	ZoneID  *uuid.UUID `json:"zone_id,omitempty"`
	GearID  *uuid.UUID `json:"gear_id,omitempty"`
}

// Effect is a catalog row linking a sellable/usable item to its logic key.
// Created by administrators; the engine only reads LogicKey.
type Effect struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	LogicKey    EffectKind `json:"logic_key"`
	Description string     `json:"description"`
	Deleted     bool       `json:"-"`
}
