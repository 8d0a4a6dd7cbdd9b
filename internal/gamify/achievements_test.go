package gamify

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifequest/platform/internal/domain"
)

type evaluatorFixture struct {
	users        *fakeUsers
	tasks        *fakeTasks
	habits       *fakeHabits
	achievements *fakeAchievements
	outbox       *fakeOutbox
	evaluator    *Evaluator
}

func newEvaluatorFixture(user *domain.User, defs ...domain.Achievement) *evaluatorFixture {
	f := &evaluatorFixture{
		users:        &fakeUsers{user: user},
		tasks:        &fakeTasks{},
		habits:       &fakeHabits{habits: map[uuid.UUID]*domain.Habit{}},
		achievements: &fakeAchievements{defs: defs},
		outbox:       &fakeOutbox{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.evaluator = NewEvaluator(f.users, f.tasks, f.habits, f.achievements, f.outbox, logger)
	return f
}

func taskEvent(userID uuid.UUID, at time.Time) domain.Event {
	return domain.Event{Kind: domain.EventTaskCompleted, UserID: userID, OccurredAt: at}
}

func TestEvaluatorTasksCompleted(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	def := domain.Achievement{
		ID:            uuid.New(),
		Name:          "First Steps",
		ConditionType: domain.ConditionTasksCompleted,
		Threshold:     1,
	}

	t.Run("unlocks at the threshold", func(t *testing.T) {
		u := newTestUser()
		f := newEvaluatorFixture(u, def)
		f.tasks.completed = 1

		newly, err := f.evaluator.Evaluate(ctx, nil, u.ID, taskEvent(u.ID, now))

		require.NoError(t, err)
		require.Equal(t, []uuid.UUID{def.ID}, newly)
		require.Len(t, f.achievements.created, 1)
		assert.Equal(t, def.ID, f.achievements.created[0].AchievementID)
		assert.Equal(t, def.Threshold, f.achievements.created[0].Progress)

		require.Len(t, f.outbox.drafts, 1)
		assert.Equal(t, string(domain.EventAchievementUnlocked), f.outbox.drafts[0].EventType)
	})

	t.Run("below the threshold stays locked", func(t *testing.T) {
		u := newTestUser()
		f := newEvaluatorFixture(u, def)
		f.tasks.completed = 0

		newly, err := f.evaluator.Evaluate(ctx, nil, u.ID, taskEvent(u.ID, now))

		require.NoError(t, err)
		assert.Empty(t, newly)
		assert.Empty(t, f.achievements.created)
	})

	t.Run("already-unlocked definitions are skipped", func(t *testing.T) {
		u := newTestUser()
		f := newEvaluatorFixture(u, def)
		f.tasks.completed = 50
		f.achievements.unlocked = map[uuid.UUID]bool{def.ID: true}

		newly, err := f.evaluator.Evaluate(ctx, nil, u.ID, taskEvent(u.ID, now))

		require.NoError(t, err)
		assert.Empty(t, newly)
		assert.Empty(t, f.achievements.created)
	})

	t.Run("losing the unlock race records nothing", func(t *testing.T) {
		u := newTestUser()
		f := newEvaluatorFixture(u, def)
		f.tasks.completed = 1
		f.achievements.loseRace = true

		newly, err := f.evaluator.Evaluate(ctx, nil, u.ID, taskEvent(u.ID, now))

		require.NoError(t, err)
		assert.Empty(t, newly)
		assert.Empty(t, f.outbox.drafts)
	})

	t.Run("ignores non-task events", func(t *testing.T) {
		u := newTestUser()
		f := newEvaluatorFixture(u, def)
		f.tasks.completed = 5

		newly, err := f.evaluator.Evaluate(ctx, nil, u.ID, domain.Event{
			Kind: domain.EventUserLogin, UserID: u.ID, OccurredAt: now,
		})

		require.NoError(t, err)
		assert.Empty(t, newly)
	})
}

func TestEvaluatorHabitStreak(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	def := domain.Achievement{
		ID:            uuid.New(),
		Name:          "Creature of Habit",
		ConditionType: domain.ConditionHabitStreak,
		Threshold:     21,
	}

	t.Run("unlocks when the streak reaches the threshold", func(t *testing.T) {
		u := newTestUser()
		h := &domain.Habit{ID: uuid.New(), UserID: u.ID, Streak: 21}
		f := newEvaluatorFixture(u, def)
		f.habits.habits[h.ID] = h

		newly, err := f.evaluator.Evaluate(ctx, nil, u.ID, domain.Event{
			Kind: domain.EventHabitCompleted, UserID: u.ID, OccurredAt: now, HabitID: &h.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{def.ID}, newly)
	})

	t.Run("another user's habit never matches", func(t *testing.T) {
		u := newTestUser()
		h := &domain.Habit{ID: uuid.New(), UserID: uuid.New(), Streak: 30}
		f := newEvaluatorFixture(u, def)
		f.habits.habits[h.ID] = h

		newly, err := f.evaluator.Evaluate(ctx, nil, u.ID, domain.Event{
			Kind: domain.EventHabitCompleted, UserID: u.ID, OccurredAt: now, HabitID: &h.ID,
		})

		require.NoError(t, err)
		assert.Empty(t, newly)
	})

	t.Run("event without a habit id never matches", func(t *testing.T) {
		u := newTestUser()
		f := newEvaluatorFixture(u, def)

		newly, err := f.evaluator.Evaluate(ctx, nil, u.ID, domain.Event{
			Kind: domain.EventHabitCompleted, UserID: u.ID, OccurredAt: now,
		})

		require.NoError(t, err)
		assert.Empty(t, newly)
	})
}

func TestEvaluatorLoginStreak(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	def := domain.Achievement{
		ID:            uuid.New(),
		Name:          "Regular",
		ConditionType: domain.ConditionLoginStreak,
		Threshold:     7,
	}

	t.Run("unlocks on the seventh consecutive login", func(t *testing.T) {
		u := newTestUser()
		u.LoginStreak = 7
		f := newEvaluatorFixture(u, def)

		newly, err := f.evaluator.Evaluate(ctx, nil, u.ID, domain.Event{
			Kind: domain.EventUserLogin, UserID: u.ID, OccurredAt: now,
		})

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{def.ID}, newly)
	})

	t.Run("shorter streaks stay locked", func(t *testing.T) {
		u := newTestUser()
		u.LoginStreak = 6
		f := newEvaluatorFixture(u, def)

		newly, err := f.evaluator.Evaluate(ctx, nil, u.ID, domain.Event{
			Kind: domain.EventUserLogin, UserID: u.ID, OccurredAt: now,
		})

		require.NoError(t, err)
		assert.Empty(t, newly)
	})
}

func TestEvaluatorSurprise(t *testing.T) {
	ctx := context.Background()

	nightOwl := domain.Achievement{
		ID:            uuid.New(),
		Name:          "Night Owl",
		ConditionType: domain.ConditionSurprise,
		IsSurprise:    true,
		PredicateKey:  "night_owl",
	}
	newYear := domain.Achievement{
		ID:            uuid.New(),
		Name:          "Fresh Start",
		ConditionType: domain.ConditionSurprise,
		IsSurprise:    true,
		PredicateKey:  "new_year_login",
	}

	t.Run("night owl fires in the small hours", func(t *testing.T) {
		u := newTestUser()
		f := newEvaluatorFixture(u, nightOwl)
		at := time.Date(2026, 8, 28, 2, 30, 0, 0, time.UTC)

		newly, err := f.evaluator.Evaluate(ctx, nil, u.ID, taskEvent(u.ID, at))

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{nightOwl.ID}, newly)
	})

	t.Run("night owl sleeps through the afternoon", func(t *testing.T) {
		u := newTestUser()
		f := newEvaluatorFixture(u, nightOwl)
		at := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)

		newly, err := f.evaluator.Evaluate(ctx, nil, u.ID, taskEvent(u.ID, at))

		require.NoError(t, err)
		assert.Empty(t, newly)
	})

	t.Run("new year login fires on january first only", func(t *testing.T) {
		u := newTestUser()
		f := newEvaluatorFixture(u, newYear)
		at := time.Date(2027, 1, 1, 9, 0, 0, 0, time.UTC)

		newly, err := f.evaluator.Evaluate(ctx, nil, u.ID, domain.Event{
			Kind: domain.EventUserLogin, UserID: u.ID, OccurredAt: at,
		})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{newYear.ID}, newly)

		f2 := newEvaluatorFixture(u, newYear)
		newly, err = f2.evaluator.Evaluate(ctx, nil, u.ID, domain.Event{
			Kind: domain.EventUserLogin, UserID: u.ID, OccurredAt: at.AddDate(0, 0, 1),
		})
		require.NoError(t, err)
		assert.Empty(t, newly)
	})

	t.Run("unknown predicate key never matches", func(t *testing.T) {
		u := newTestUser()
		def := domain.Achievement{
			ID:            uuid.New(),
			ConditionType: domain.ConditionSurprise,
			PredicateKey:  "blood_moon",
		}
		f := newEvaluatorFixture(u, def)
		at := time.Date(2026, 8, 28, 2, 0, 0, 0, time.UTC)

		newly, err := f.evaluator.Evaluate(ctx, nil, u.ID, taskEvent(u.ID, at))

		require.NoError(t, err)
		assert.Empty(t, newly)
	})
}

func TestEvaluatorEdgeCases(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	t.Run("missing user is a silent no-op", func(t *testing.T) {
		f := newEvaluatorFixture(nil, domain.Achievement{
			ID: uuid.New(), ConditionType: domain.ConditionTasksCompleted, Threshold: 1,
		})
		f.tasks.completed = 10

		newly, err := f.evaluator.Evaluate(ctx, nil, uuid.New(), taskEvent(uuid.New(), now))

		require.NoError(t, err)
		assert.Nil(t, newly)
	})

	t.Run("unrecognized condition type never matches", func(t *testing.T) {
		u := newTestUser()
		f := newEvaluatorFixture(u, domain.Achievement{
			ID:            uuid.New(),
			ConditionType: domain.ConditionType("PHASE_OF_MOON"),
		})

		newly, err := f.evaluator.Evaluate(ctx, nil, u.ID, taskEvent(u.ID, now))

		require.NoError(t, err)
		assert.Empty(t, newly)
	})

	t.Run("one event can unlock several definitions", func(t *testing.T) {
		u := newTestUser()
		first := domain.Achievement{ID: uuid.New(), ConditionType: domain.ConditionTasksCompleted, Threshold: 1}
		tenth := domain.Achievement{ID: uuid.New(), ConditionType: domain.ConditionTasksCompleted, Threshold: 10}
		f := newEvaluatorFixture(u, first, tenth)
		f.tasks.completed = 10

		newly, err := f.evaluator.Evaluate(ctx, nil, u.ID, taskEvent(u.ID, now))

		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{first.ID, tenth.ID}, newly)
		assert.Len(t, f.outbox.drafts, 2)
	})
}
