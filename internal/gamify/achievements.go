package gamify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lifequest/platform/internal/domain"
	"github.com/lifequest/platform/internal/repository"
)

// SurprisePredicate is one named heuristic for SURPRISE achievements.
// Definitions select theirs through Achievement.PredicateKey, so renaming a
// display title never breaks matching.
type SurprisePredicate func(user *domain.User, event domain.Event) bool

// The shipped surprise predicates.
var surprisePredicates = map[string]SurprisePredicate{
	// Completion between midnight and 05:00.
	"night_owl": func(_ *domain.User, ev domain.Event) bool {
		if ev.Kind != domain.EventTaskCompleted {
			return false
		}
		h := ev.OccurredAt.Hour()
		return h >= 0 && h < 5
	},
	// Completion on a Sunday.
	"sunday_rest": func(_ *domain.User, ev domain.Event) bool {
		return ev.Kind == domain.EventTaskCompleted && ev.OccurredAt.Weekday() == time.Sunday
	},
	// Login on January 1st.
	"new_year_login": func(_ *domain.User, ev domain.Event) bool {
		return ev.Kind == domain.EventUserLogin &&
			ev.OccurredAt.Month() == time.January && ev.OccurredAt.Day() == 1
	},
}

// RegisterSurprisePredicate adds a named heuristic to the library. Intended
// for wiring time, before evaluation starts.
func RegisterSurprisePredicate(key string, p SurprisePredicate) {
	surprisePredicates[key] = p
}

// Evaluator matches domain events against the achievement catalog and
// records unlocks.
type Evaluator struct {
	users        repository.UserRepository
	tasks        repository.TaskRepository
	habits       repository.HabitRepository
	achievements repository.AchievementRepository
	outbox       repository.OutboxRepository
	logger       *slog.Logger
}

// NewEvaluator creates the achievement rule engine.
func NewEvaluator(
	users repository.UserRepository,
	tasks repository.TaskRepository,
	habits repository.HabitRepository,
	achievements repository.AchievementRepository,
	outbox repository.OutboxRepository,
	logger *slog.Logger,
) *Evaluator {
	return &Evaluator{
		users:        users,
		tasks:        tasks,
		habits:       habits,
		achievements: achievements,
		outbox:       outbox,
		logger:       logger,
	}
}

// Evaluate checks every active, not-yet-unlocked achievement definition
// against the event and records the ones that match. Returns the ids newly
// unlocked.
//
// Unlike the rest of the engine, a missing user and an unrecognized
// condition type are silent no-ops rather than errors: evaluation runs after
// the triggering action already committed, and must never fail it.
func (ev *Evaluator) Evaluate(ctx context.Context, db repository.DBTX, userID uuid.UUID, event domain.Event) ([]uuid.UUID, error) {
	user, err := ev.users.FindByID(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	defs, err := ev.achievements.ListActive(ctx, db)
	if err != nil {
		return nil, err
	}
	unlocked, err := ev.achievements.UnlockedIDs(ctx, db, userID)
	if err != nil {
		return nil, err
	}

	var newly []uuid.UUID
	for i := range defs {
		def := &defs[i]
		if unlocked[def.ID] {
			continue
		}
		match, err := ev.matches(ctx, db, user, def, event)
		if err != nil {
			return newly, err
		}
		if !match {
			continue
		}

		unlock := &domain.AchievementUnlock{
			ID:            uuid.New(),
			UserID:        userID,
			AchievementID: def.ID,
			AchievedAt:    event.OccurredAt,
			Progress:      def.Threshold,
		}
		created, err := ev.achievements.CreateUnlock(ctx, db, unlock)
		if err != nil {
			return newly, err
		}
		if !created {
			// Lost a race with a concurrent evaluation; the unique index
			// kept the invariant, nothing to record.
			continue
		}
		if err := ev.outbox.Insert(ctx, db, domain.NewEventDraft("achievement", domain.Event{
			Kind:       domain.EventAchievementUnlocked,
			UserID:     userID,
			OccurredAt: event.OccurredAt,
			ItemID:     &def.ID,
		})); err != nil {
			return newly, err
		}
		ev.logger.Info("achievement unlocked",
			"user_id", userID, "achievement_id", def.ID, "name", def.Name)
		newly = append(newly, def.ID)
	}
	return newly, nil
}

func (ev *Evaluator) matches(ctx context.Context, db repository.DBTX, user *domain.User, def *domain.Achievement, event domain.Event) (bool, error) {
	switch def.ConditionType {
	case domain.ConditionTasksCompleted:
		if event.Kind != domain.EventTaskCompleted {
			return false, nil
		}
		count, err := ev.tasks.CountCompleted(ctx, db, user.ID)
		if err != nil {
			return false, err
		}
		return count >= def.Threshold, nil

	case domain.ConditionHabitStreak:
		if event.Kind != domain.EventHabitCompleted || event.HabitID == nil {
			return false, nil
		}
		habit, err := ev.habits.FindByID(ctx, db, *event.HabitID)
		if err != nil {
			return false, err
		}
		if habit == nil || habit.UserID != user.ID {
			return false, nil
		}
		return habit.Streak >= def.Threshold, nil

	case domain.ConditionLoginStreak:
		if event.Kind != domain.EventUserLogin {
			return false, nil
		}
		return user.LoginStreak >= def.Threshold, nil

	case domain.ConditionSurprise:
		p, ok := surprisePredicates[def.PredicateKey]
		if !ok {
			return false, nil
		}
		return p(user, event), nil
	}

	// Unrecognized condition types never match.
	return false, nil
}
