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

// HabitService owns habit CRUD. Completion and failure live in
// RewardService.
type HabitService struct {
	pool      *pgxpool.Pool
	habits    repository.HabitRepository
	zones     repository.ZoneRepository
	outbox    repository.OutboxRepository
	evaluator *gamify.Evaluator
	logger    *slog.Logger
}

// NewHabitService creates a HabitService.
func NewHabitService(
	pool *pgxpool.Pool,
	habits repository.HabitRepository,
	zones repository.ZoneRepository,
	outbox repository.OutboxRepository,
	evaluator *gamify.Evaluator,
	logger *slog.Logger,
) *HabitService {
	return &HabitService{pool: pool, habits: habits, zones: zones, outbox: outbox, evaluator: evaluator, logger: logger}
}

// CreateHabitInput is the payload for creating a habit.
type CreateHabitInput struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Energy      int        `json:"energy"`
	Points      int        `json:"points"`
	Frequency   string     `json:"frequency"`
	ZoneID      *uuid.UUID `json:"zone_id"`
}

// Create inserts a new active habit with a zero streak.
func (s *HabitService) Create(ctx context.Context, userID uuid.UUID, in CreateHabitInput) (*domain.Habit, error) {
	if in.Name == "" {
		return nil, domain.ErrValidation("habit name is required")
	}
	if in.Energy < 0 || in.Points < 0 {
		return nil, domain.ErrValidation("energy and points must be non-negative")
	}
	if in.ZoneID != nil {
		zone, err := s.zones.FindByID(ctx, s.pool, *in.ZoneID)
		if err != nil {
			return nil, err
		}
		if zone == nil || zone.UserID != userID {
			return nil, domain.ErrNotFound("zone", in.ZoneID.String())
		}
	}
	habit := &domain.Habit{
		ID:          uuid.New(),
		UserID:      userID,
		ZoneID:      in.ZoneID,
		Name:        in.Name,
		Description: in.Description,
		Active:      true,
		Energy:      in.Energy,
		Points:      in.Points,
		Frequency:   in.Frequency,
	}
	if err := s.habits.Create(ctx, s.pool, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// List returns the user's habits.
func (s *HabitService) List(ctx context.Context, userID uuid.UUID) ([]domain.Habit, error) {
	return s.habits.ListByUser(ctx, s.pool, userID)
}

// Get returns one habit, enforcing ownership.
func (s *HabitService) Get(ctx context.Context, userID, habitID uuid.UUID) (*domain.Habit, error) {
	habit, err := s.habits.FindByID(ctx, s.pool, habitID)
	if err != nil {
		return nil, err
	}
	if habit == nil {
		return nil, domain.ErrNotFound("habit", habitID.String())
	}
	if habit.UserID != userID {
		return nil, domain.ErrUnauthorized("habit belongs to another user")
	}
	return habit, nil
}

// Delete soft-deletes a habit and emits a deletion event; dropping a habit
// can still satisfy surprise achievements.
func (s *HabitService) Delete(ctx context.Context, userID, habitID uuid.UUID) error {
	now := time.Now().UTC()
	if _, err := s.Get(ctx, userID, habitID); err != nil {
		return err
	}

	event := domain.Event{Kind: domain.EventHabitDeleted, UserID: userID, OccurredAt: now, HabitID: &habitID}
	err := inTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.habits.SoftDelete(ctx, tx, habitID); err != nil {
			return err
		}
		return s.outbox.Insert(ctx, tx, domain.NewEventDraft("habit", event))
	})
	if err != nil {
		return err
	}

	if _, err := s.evaluator.Evaluate(ctx, s.pool, userID, event); err != nil {
		s.logger.Error("achievement evaluation failed",
			"user_id", userID, "event", event.Kind, "error", err)
	}
	return nil
}
