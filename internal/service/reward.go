package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lifequest/platform/internal/domain"
	"github.com/lifequest/platform/internal/gamify"
	"github.com/lifequest/platform/internal/repository"
)

// RewardService runs the completion pipeline for tasks, habits and
// projects. Each operation is one transaction: the user row is locked first,
// so concurrent completions for the same user serialize and the stackable
// counter, multipliers and level loop never race.
type RewardService struct {
	pool      *pgxpool.Pool
	users     repository.UserRepository
	tasks     repository.TaskRepository
	habits    repository.HabitRepository
	projects  repository.ProjectRepository
	zones     repository.ZoneRepository
	energyLog repository.EnergyLogRepository
	outbox    repository.OutboxRepository
	evaluator *gamify.Evaluator
	logger    *slog.Logger
}

// NewRewardService creates a RewardService.
func NewRewardService(
	pool *pgxpool.Pool,
	users repository.UserRepository,
	tasks repository.TaskRepository,
	habits repository.HabitRepository,
	projects repository.ProjectRepository,
	zones repository.ZoneRepository,
	energyLog repository.EnergyLogRepository,
	outbox repository.OutboxRepository,
	evaluator *gamify.Evaluator,
	logger *slog.Logger,
) *RewardService {
	return &RewardService{
		pool:      pool,
		users:     users,
		tasks:     tasks,
		habits:    habits,
		projects:  projects,
		zones:     zones,
		energyLog: energyLog,
		outbox:    outbox,
		evaluator: evaluator,
		logger:    logger,
	}
}

// CompletionResult is what a completion endpoint returns: the committed
// reward plus any achievements the follow-up evaluation unlocked.
type CompletionResult struct {
	gamify.RewardResult
	AlreadyCompleted     bool        `json:"already_completed,omitempty"`
	UnlockedAchievements []uuid.UUID `json:"unlocked_achievements,omitempty"`
}

// CompleteTask completes a task and credits its reward. Completing an
// already-completed task is a no-op returning a zero reward.
func (s *RewardService) CompleteTask(ctx context.Context, userID, taskID uuid.UUID) (*CompletionResult, error) {
	now := time.Now().UTC()

	var res *CompletionResult
	err := inTx(ctx, s.pool, func(tx pgx.Tx) error {
		user, err := lockUser(ctx, tx, s.users, userID)
		if err != nil {
			return err
		}
		task, err := s.tasks.FindByID(ctx, tx, taskID)
		if err != nil {
			return err
		}
		if task == nil {
			return domain.ErrNotFound("task", taskID.String())
		}
		if task.UserID != userID {
			return domain.ErrUnauthorized("task belongs to another user")
		}
		if task.Status == domain.StatusCompleted {
			res = &CompletionResult{AlreadyCompleted: true}
			return nil
		}
		if err := s.tasks.SetStatus(ctx, tx, taskID, domain.StatusCompleted); err != nil {
			return err
		}

		item := domain.CompletionItem{Kind: domain.ItemTask, ID: task.ID, Energy: task.Energy, Points: task.Points}
		event := domain.Event{Kind: domain.EventTaskCompleted, UserID: userID, OccurredAt: now, ItemID: &taskID}
		reward, err := s.commitReward(ctx, tx, user, item, nil, event, now)
		if err != nil {
			return err
		}
		res = &CompletionResult{RewardResult: *reward}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !res.AlreadyCompleted {
		res.UnlockedAchievements = s.evaluate(ctx, domain.Event{
			Kind:       domain.EventTaskCompleted,
			UserID:     userID,
			OccurredAt: now,
			ItemID:     &taskID,
		})
	}
	return res, nil
}

// CompleteHabit advances the habit's streak and credits its reward. Habits
// are repeatable, so there is no terminal-state guard here.
func (s *RewardService) CompleteHabit(ctx context.Context, userID, habitID uuid.UUID) (*CompletionResult, error) {
	now := time.Now().UTC()

	var res *CompletionResult
	err := inTx(ctx, s.pool, func(tx pgx.Tx) error {
		user, err := lockUser(ctx, tx, s.users, userID)
		if err != nil {
			return err
		}
		habit, err := s.habits.FindByID(ctx, tx, habitID)
		if err != nil {
			return err
		}
		if habit == nil {
			return domain.ErrNotFound("habit", habitID.String())
		}
		if habit.UserID != userID {
			return domain.ErrUnauthorized("habit belongs to another user")
		}

		habit.Streak++
		habit.TotalChecks++
		if err := s.habits.Save(ctx, tx, habit); err != nil {
			return err
		}

		item := domain.CompletionItem{Kind: domain.ItemHabit, ID: habit.ID, Energy: habit.Energy, Points: habit.Points, ZoneID: habit.ZoneID}
		event := domain.Event{Kind: domain.EventHabitCompleted, UserID: userID, OccurredAt: now, HabitID: &habitID}
		reward, err := s.commitReward(ctx, tx, user, item, nil, event, now)
		if err != nil {
			return err
		}
		res = &CompletionResult{RewardResult: *reward}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res.UnlockedAchievements = s.evaluate(ctx, domain.Event{
		Kind:       domain.EventHabitCompleted,
		UserID:     userID,
		OccurredAt: now,
		HabitID:    &habitID,
	})
	return res, nil
}

// CompleteProject completes a project. On top of the user pipeline, the
// project's base points feed the zone's own progression track, and an armed
// zone coin multiplier scales the coin payout.
func (s *RewardService) CompleteProject(ctx context.Context, userID, projectID uuid.UUID) (*CompletionResult, error) {
	now := time.Now().UTC()

	var res *CompletionResult
	err := inTx(ctx, s.pool, func(tx pgx.Tx) error {
		user, err := lockUser(ctx, tx, s.users, userID)
		if err != nil {
			return err
		}
		project, err := s.projects.FindByID(ctx, tx, projectID)
		if err != nil {
			return err
		}
		if project == nil {
			return domain.ErrNotFound("project", projectID.String())
		}
		if project.UserID != userID {
			return domain.ErrUnauthorized("project belongs to another user")
		}
		if project.Status == domain.StatusCompleted {
			res = &CompletionResult{AlreadyCompleted: true}
			return nil
		}
		if err := s.projects.SetStatus(ctx, tx, projectID, domain.StatusCompleted); err != nil {
			return err
		}

		item := domain.CompletionItem{Kind: domain.ItemProject, ID: project.ID, Energy: project.Energy, Points: project.Points, ZoneID: project.ZoneID}
		event := domain.Event{Kind: domain.EventProjectCompleted, UserID: userID, OccurredAt: now, ItemID: &projectID}
		reward, err := s.commitReward(ctx, tx, user, item, project.ZoneID, event, now)
		if err != nil {
			return err
		}
		res = &CompletionResult{RewardResult: *reward}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !res.AlreadyCompleted {
		res.UnlockedAchievements = s.evaluate(ctx, domain.Event{
			Kind:       domain.EventProjectCompleted,
			UserID:     userID,
			OccurredAt: now,
			ItemID:     &projectID,
		})
	}
	return res, nil
}

// FailHabit runs the penalty path for a habit the user missed.
func (s *RewardService) FailHabit(ctx context.Context, userID, habitID uuid.UUID) (*gamify.PenaltyOutcome, error) {
	now := time.Now().UTC()

	var out gamify.PenaltyOutcome
	err := inTx(ctx, s.pool, func(tx pgx.Tx) error {
		user, err := lockUser(ctx, tx, s.users, userID)
		if err != nil {
			return err
		}
		habit, err := s.habits.FindByID(ctx, tx, habitID)
		if err != nil {
			return err
		}
		if habit == nil {
			return domain.ErrNotFound("habit", habitID.String())
		}
		if habit.UserID != userID {
			return domain.ErrUnauthorized("habit belongs to another user")
		}

		out = gamify.ApplyHabitFailure(user, habit, now)
		if err := s.habits.Save(ctx, tx, habit); err != nil {
			return err
		}
		return s.users.Save(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// commitReward runs the modifier pipeline and commits its outcome: the
// energy audit record, the user's progression, the zone track for zone-tied
// completions, and the outbox drafts. Runs inside the caller's transaction
// with the user row already locked.
func (s *RewardService) commitReward(ctx context.Context, tx pgx.Tx, user *domain.User, item domain.CompletionItem, zoneID *uuid.UUID, event domain.Event, now time.Time) (*gamify.RewardResult, error) {
	breakdown := gamify.ComputeReward(user, item, now)
	coins := gamify.ZoneCoinBonus(user, zoneID, breakdown.Coins, now)

	if err := s.energyLog.Insert(ctx, tx, &domain.EnergyLogEntry{
		UserID:   user.ID,
		ItemKind: item.Kind,
		ItemID:   item.ID,
		Day:      now.Truncate(24 * time.Hour),
		Energy:   breakdown.Energy,
	}); err != nil {
		return nil, err
	}

	lvl := gamify.ApplyUserProgress(user, breakdown.XP, coins)

	result := &gamify.RewardResult{
		Energy:    breakdown.Energy,
		XP:        breakdown.XP,
		Coins:     coins,
		LevelUps:  lvl.BonusGems,
		UserLevel: lvl.Level,
	}

	if zoneID != nil {
		zone, err := s.zones.LockForUpdate(ctx, tx, *zoneID)
		if err != nil {
			return nil, err
		}
		if zone == nil {
			return nil, domain.ErrNotFound("zone", zoneID.String())
		}
		// The zone track earns the item's base points, untouched by the
		// user-side modifiers.
		zl := gamify.ApplyZoneProgress(zone, item.Points)
		if err := s.zones.Save(ctx, tx, zone); err != nil {
			return nil, err
		}
		result.ZoneLevelUp = &zl
	}

	if err := s.users.Save(ctx, tx, user); err != nil {
		return nil, err
	}

	if err := s.outbox.Insert(ctx, tx, domain.NewEventDraft("user", event)); err != nil {
		return nil, err
	}
	if lvl.LeveledUp {
		if err := s.outbox.Insert(ctx, tx, domain.NewEventDraft("user", domain.Event{
			Kind:       domain.EventLevelUp,
			UserID:     user.ID,
			OccurredAt: now,
			Extra:      map[string]any{"level": lvl.Level},
		})); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// evaluate runs the achievement engine after the triggering transaction
// committed. Evaluation failures are logged, never surfaced: the completion
// already happened.
func (s *RewardService) evaluate(ctx context.Context, event domain.Event) []uuid.UUID {
	unlocked, err := s.evaluator.Evaluate(ctx, s.pool, event.UserID, event)
	if err != nil {
		s.logger.Error("achievement evaluation failed",
			"user_id", event.UserID, "event", event.Kind, "error", err)
	}
	return unlocked
}
