package domain

import (
	"time"

	"github.com/google/uuid"
)

// ConditionType selects the predicate an achievement definition is checked
// with.
type ConditionType string

const (
	ConditionTasksCompleted ConditionType = "TASKS_COMPLETED"
	ConditionHabitStreak    ConditionType = "HABIT_STREAK"
	ConditionLoginStreak    ConditionType = "LOGIN_STREAK"
	ConditionSurprise       ConditionType = "SURPRISE"
)

// Achievement is an immutable catalog entry. PredicateKey selects the named
// heuristic for SURPRISE conditions; it is stable across renames of the
// display name.
type Achievement struct {
	ID             uuid.UUID     `json:"id"`
	Name           string        `json:"name"`
	Description    string        `json:"description,omitempty"`
	ConditionType  ConditionType `json:"condition_type"`
	Threshold      int           `json:"threshold"`
	HonorificTitle string        `json:"honorific_title,omitempty"`
	IsSurprise     bool          `json:"is_surprise"`
	PredicateKey   string        `json:"predicate_key,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	Deleted        bool          `json:"-"`
}

// AchievementUnlock is the append-only fact that a user earned an
// achievement. At most one non-deleted row exists per (user, achievement),
// enforced by a unique index.
type AchievementUnlock struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	AchievementID uuid.UUID `json:"achievement_id"`
	AchievedAt    time.Time `json:"achieved_at"`
	Progress      int       `json:"progress"`
}
