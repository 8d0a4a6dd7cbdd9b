package domain

import (
	"time"

	"github.com/google/uuid"
)

// ItemKind discriminates the three completable item types.
type ItemKind string

const (
	ItemTask    ItemKind = "TASK"
	ItemHabit   ItemKind = "HABIT"
	ItemProject ItemKind = "PROJECT"
)

// Item status values shared by tasks and projects.
const (
	StatusPending   = "PENDING"
	StatusActive    = "ACTIVE"
	StatusCompleted = "COMPLETED"
	StatusOverdue   = "OVERDUE"
)

// Task is a one-off completable item. Completion is terminal.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	ProjectID   *uuid.UUID `json:"project_id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Energy      int        `json:"energy"`
	Points      int        `json:"points"`
	Priority    string     `json:"priority"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	Deleted     bool       `json:"-"`
}

// Habit is a repeatable item with a streak. Completing it never terminates
// it; failing it breaks the streak unless a protection effect intervenes.
type Habit struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	ZoneID      *uuid.UUID `json:"zone_id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Active      bool       `json:"active"`
	Energy      int        `json:"energy"`
	Points      int        `json:"points"`
	Frequency   string     `json:"frequency"`
	Streak      int        `json:"streak"`
	TotalChecks int        `json:"total_checks"`
	CreatedAt   time.Time  `json:"created_at"`
	Deleted     bool       `json:"-"`
}

// Project is a completable container tied to an optional zone; its reward
// feeds the zone's progression track as well as the user's.
type Project struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	ZoneID      *uuid.UUID `json:"zone_id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Energy      int        `json:"energy"`
	Points      int        `json:"points"`
	CreatedAt   time.Time  `json:"created_at"`
	Deleted     bool       `json:"-"`
}

// CompletionItem is the reward pipeline's view of an item: just the fields
// the computation reads.
type CompletionItem struct {
	Kind   ItemKind
	ID     uuid.UUID
	Energy int
	Points int
	ZoneID *uuid.UUID
}

// EnergyLogEntry is a write-once audit record of energy granted by one
// completion. Never mutated after insert.
type EnergyLogEntry struct {
	ID       int64     `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	ItemKind ItemKind  `json:"item_kind"`
	ItemID   uuid.UUID `json:"item_id"`
	Day      time.Time `json:"day"` // date only
	Energy   int       `json:"energy"`
}

// JournalEntry is a dated free-form note; creating one is an achievement
// event emitter, nothing more.
type JournalEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Deleted   bool      `json:"-"`
}
