package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lifequest/platform/internal/domain"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// UserRepository provides access to users, including the serialized
// gamification state.
type UserRepository interface {
	// FindByID returns a non-deleted user, or nil if absent.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.User, error)

	// FindByIdentifier looks a user up by username or email.
	FindByIdentifier(ctx context.Context, db DBTX, identifier string) (*domain.User, error)

	// LockForUpdate acquires a row-level lock (SELECT FOR UPDATE). Every
	// reward or effect transaction must go through this so concurrent
	// completions for one user serialize.
	LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.User, error)

	// Create inserts a new user.
	Create(ctx context.Context, db DBTX, user *domain.User) error

	// Save persists the mutable gamification state (counters, streaks,
	// effect state) of an already-loaded user.
	Save(ctx context.Context, db DBTX, user *domain.User) error
}

// TaskRepository provides access to tasks.
type TaskRepository interface {
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Task, error)
	ListByUser(ctx context.Context, db DBTX, userID uuid.UUID) ([]domain.Task, error)
	Create(ctx context.Context, db DBTX, task *domain.Task) error
	SetStatus(ctx context.Context, db DBTX, id uuid.UUID, status string) error
	SoftDelete(ctx context.Context, db DBTX, id uuid.UUID) error

	// CountCompleted returns the user's completed, non-deleted task count.
	CountCompleted(ctx context.Context, db DBTX, userID uuid.UUID) (int, error)

	// MarkOverdue flips pending tasks past their end date to OVERDUE and
	// returns how many rows changed.
	MarkOverdue(ctx context.Context, db DBTX, userID uuid.UUID, today time.Time) (int64, error)
}

// HabitRepository provides access to habits.
type HabitRepository interface {
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Habit, error)
	ListByUser(ctx context.Context, db DBTX, userID uuid.UUID) ([]domain.Habit, error)
	Create(ctx context.Context, db DBTX, habit *domain.Habit) error

	// Save persists streak, total checks and active flag.
	Save(ctx context.Context, db DBTX, habit *domain.Habit) error
	SoftDelete(ctx context.Context, db DBTX, id uuid.UUID) error
}

// ProjectRepository provides access to projects.
type ProjectRepository interface {
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Project, error)
	ListByUser(ctx context.Context, db DBTX, userID uuid.UUID) ([]domain.Project, error)
	Create(ctx context.Context, db DBTX, project *domain.Project) error
	SetStatus(ctx context.Context, db DBTX, id uuid.UUID, status string) error
	SoftDelete(ctx context.Context, db DBTX, id uuid.UUID) error

	// AddEnergyToActive adds delta energy to every active project of the
	// user (project_energy_boost) and returns the affected row count.
	AddEnergyToActive(ctx context.Context, db DBTX, userID uuid.UUID, delta int) (int64, error)
}

// ZoneRepository provides access to zones and their progression track.
type ZoneRepository interface {
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Zone, error)
	ListByUser(ctx context.Context, db DBTX, userID uuid.UUID) ([]domain.Zone, error)
	Create(ctx context.Context, db DBTX, zone *domain.Zone) error

	// LockForUpdate serializes zone progression writes.
	LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Zone, error)
	Save(ctx context.Context, db DBTX, zone *domain.Zone) error
}

// AchievementRepository provides access to the achievement catalog and
// per-user unlocks.
type AchievementRepository interface {
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Achievement, error)
	ListActive(ctx context.Context, db DBTX) ([]domain.Achievement, error)
	Create(ctx context.Context, db DBTX, a *domain.Achievement) error
	Update(ctx context.Context, db DBTX, a *domain.Achievement) error
	SoftDelete(ctx context.Context, db DBTX, id uuid.UUID) error

	// UnlockedIDs returns the set of achievement ids the user already holds.
	UnlockedIDs(ctx context.Context, db DBTX, userID uuid.UUID) (map[uuid.UUID]bool, error)

	// CreateUnlock inserts an unlock. Returns false without error when the
	// (user, achievement) pair already exists — the unique index makes the
	// at-most-once invariant crash-safe under races.
	CreateUnlock(ctx context.Context, db DBTX, unlock *domain.AchievementUnlock) (bool, error)

	ListUnlocks(ctx context.Context, db DBTX, userID uuid.UUID) ([]domain.AchievementUnlock, error)
}

// EnergyLogRepository appends to the write-once energy audit trail.
type EnergyLogRepository interface {
	Insert(ctx context.Context, db DBTX, entry *domain.EnergyLogEntry) error

	// SumSince totals logged energy for the user from the given day onward.
	SumSince(ctx context.Context, db DBTX, userID uuid.UUID, since time.Time) (int, error)
}

// GearRepository provides read access to the gear catalog.
type GearRepository interface {
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Gear, error)
	ListAvailable(ctx context.Context, db DBTX, userID uuid.UUID) ([]domain.Gear, error)
}

// InventoryRepository provides access to user-owned gear instances.
type InventoryRepository interface {
	FindByGear(ctx context.Context, db DBTX, userID, gearID uuid.UUID) (*domain.InventoryItem, error)
	ListByUser(ctx context.Context, db DBTX, userID uuid.UUID) ([]domain.InventoryItem, error)
	Create(ctx context.Context, db DBTX, item *domain.InventoryItem) error
	SetRemainingUses(ctx context.Context, db DBTX, id uuid.UUID, uses int) error
}

// SkillRepository provides access to the skill catalog and ownership.
type SkillRepository interface {
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Skill, error)
	ListAvailable(ctx context.Context, db DBTX, userID uuid.UUID) ([]domain.Skill, error)
	Owns(ctx context.Context, db DBTX, userID, skillID uuid.UUID) (bool, error)
	Grant(ctx context.Context, db DBTX, userID, skillID uuid.UUID) error
}

// EffectRepository provides read access to the effect catalog.
type EffectRepository interface {
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Effect, error)
	ListActive(ctx context.Context, db DBTX) ([]domain.Effect, error)
}

// JournalRepository stores journal entries.
type JournalRepository interface {
	Create(ctx context.Context, db DBTX, entry *domain.JournalEntry) error
	ListByUser(ctx context.Context, db DBTX, userID uuid.UUID) ([]domain.JournalEntry, error)
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event within the caller's transaction.
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns unpublished events for the poller.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]domain.OutboxDraft, error)

	// MarkPublished stamps events as published.
	MarkPublished(ctx context.Context, db DBTX, ids []uuid.UUID) error
}
