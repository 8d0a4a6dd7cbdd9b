package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventKind names a domain event. Collaborators emit these after committing
// their own state change; the achievement engine consumes them and the
// outbox publishes them.
type EventKind string

const (
	EventTaskCompleted       EventKind = "TASK_COMPLETED"
	EventHabitCompleted      EventKind = "HABIT_COMPLETED"
	EventHabitDeleted        EventKind = "HABIT_DELETED"
	EventProjectCompleted    EventKind = "PROJECT_COMPLETED"
	EventJournalEntryCreated EventKind = "JOURNAL_ENTRY_CREATED"
	EventUserLogin           EventKind = "USER_LOGIN"
	EventTaskOverdueCheck    EventKind = "TASK_OVERDUE_CHECK"
	EventAchievementUnlocked EventKind = "ACHIEVEMENT_UNLOCKED"
	EventLevelUp             EventKind = "LEVEL_UP"
)

// Event is the payload handed to the achievement engine. OccurredAt is the
// wall time of the triggering action; the optional IDs give predicates their
// context. Extra carries anything emitters want published that predicates do
// not read.
type Event struct {
	Kind       EventKind      `json:"kind"`
	UserID     uuid.UUID      `json:"user_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	HabitID    *uuid.UUID     `json:"habit_id,omitempty"`
	ItemID     *uuid.UUID     `json:"item_id,omitempty"`
	Extra      map[string]any `json:"extra,omitempty"`
}

// OutboxDraft is an event staged for publication, written in the same
// transaction as the state change it describes.
type OutboxDraft struct {
	EventID       uuid.UUID       `json:"event_id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// NewEventDraft stages a domain event for the outbox.
func NewEventDraft(aggregateType string, e Event) OutboxDraft {
	payload, _ := json.Marshal(e)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: aggregateType,
		AggregateID:   e.UserID.String(),
		EventType:     string(e.Kind),
		Payload:       payload,
		OccurredAt:    e.OccurredAt,
	}
}
