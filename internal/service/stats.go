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

// StatsService assembles read-only player snapshots.
type StatsService struct {
	pool      *pgxpool.Pool
	users     repository.UserRepository
	tasks     repository.TaskRepository
	energyLog repository.EnergyLogRepository
	logger    *slog.Logger
}

// NewStatsService creates a StatsService.
func NewStatsService(
	pool *pgxpool.Pool,
	users repository.UserRepository,
	tasks repository.TaskRepository,
	energyLog repository.EnergyLogRepository,
	logger *slog.Logger,
) *StatsService {
	return &StatsService{pool: pool, users: users, tasks: tasks, energyLog: energyLog, logger: logger}
}

// PlayerStats is the profile snapshot: progression counters, thresholds
// and recent energy activity.
type PlayerStats struct {
	User           *domain.User `json:"user"`
	NextLevelXP    int          `json:"next_level_xp"`
	TasksCompleted int          `json:"tasks_completed"`
	WeeklyEnergy   int          `json:"weekly_energy"`
}

// Snapshot returns the user's current progression state.
func (s *StatsService) Snapshot(ctx context.Context, userID uuid.UUID) (*PlayerStats, error) {
	user, err := s.users.FindByID(ctx, s.pool, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound("user", userID.String())
	}

	completed, err := s.tasks.CountCompleted(ctx, s.pool, userID)
	if err != nil {
		return nil, err
	}
	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	weekly, err := s.energyLog.SumSince(ctx, s.pool, userID, weekAgo)
	if err != nil {
		return nil, err
	}

	return &PlayerStats{
		User:           user,
		NextLevelXP:    gamify.UserXPThreshold(user.Level + 1),
		TasksCompleted: completed,
		WeeklyEnergy:   weekly,
	}, nil
}
