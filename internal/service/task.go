package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lifequest/platform/internal/domain"
	"github.com/lifequest/platform/internal/gamify"
	"github.com/lifequest/platform/internal/repository"
)

// TaskService owns task CRUD and the overdue sweep. Completion lives in
// RewardService.
type TaskService struct {
	pool      *pgxpool.Pool
	tasks     repository.TaskRepository
	evaluator *gamify.Evaluator
	logger    *slog.Logger
}

// NewTaskService creates a TaskService.
func NewTaskService(pool *pgxpool.Pool, tasks repository.TaskRepository, evaluator *gamify.Evaluator, logger *slog.Logger) *TaskService {
	return &TaskService{pool: pool, tasks: tasks, evaluator: evaluator, logger: logger}
}

// CreateTaskInput is the payload for creating a task.
type CreateTaskInput struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Energy      int        `json:"energy"`
	Points      int        `json:"points"`
	Priority    string     `json:"priority"`
	ProjectID   *uuid.UUID `json:"project_id"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// Create inserts a new pending task.
func (s *TaskService) Create(ctx context.Context, userID uuid.UUID, in CreateTaskInput) (*domain.Task, error) {
	if in.Name == "" {
		return nil, domain.ErrValidation("task name is required")
	}
	if in.Energy < 0 || in.Points < 0 {
		return nil, domain.ErrValidation("energy and points must be non-negative")
	}
	task := &domain.Task{
		ID:          uuid.New(),
		UserID:      userID,
		ProjectID:   in.ProjectID,
		Name:        in.Name,
		Description: in.Description,
		Status:      domain.StatusPending,
		Energy:      in.Energy,
		Points:      in.Points,
		Priority:    in.Priority,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
	if err := s.tasks.Create(ctx, s.pool, task); err != nil {
		return nil, err
	}
	return task, nil
}

// List returns the user's tasks.
func (s *TaskService) List(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	return s.tasks.ListByUser(ctx, s.pool, userID)
}

// Get returns one task, enforcing ownership.
func (s *TaskService) Get(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, s.pool, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrNotFound("task", taskID.String())
	}
	if task.UserID != userID {
		return nil, domain.ErrUnauthorized("task belongs to another user")
	}
	return task, nil
}

// Delete soft-deletes a task.
func (s *TaskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, taskID); err != nil {
		return err
	}
	return s.tasks.SoftDelete(ctx, s.pool, taskID)
}

// SweepOverdue flips the user's pending tasks past their end date to
// OVERDUE and feeds the achievement engine an overdue-check event.
func (s *TaskService) SweepOverdue(ctx context.Context, userID uuid.UUID) (int64, error) {
	now := time.Now().UTC()
	flipped, err := s.tasks.MarkOverdue(ctx, s.pool, userID, now)
	if err != nil {
		return 0, err
	}
	if flipped > 0 {
		s.logger.Info("tasks marked overdue", "user_id", userID, "count", flipped)
	}
	event := domain.Event{Kind: domain.EventTaskOverdueCheck, UserID: userID, OccurredAt: now,
		Extra: map[string]any{"flipped": flipped}}
	if _, err := s.evaluator.Evaluate(ctx, s.pool, userID, event); err != nil {
		s.logger.Error("achievement evaluation failed",
			"user_id", userID, "event", event.Kind, "error", err)
	}
	return flipped, nil
}
