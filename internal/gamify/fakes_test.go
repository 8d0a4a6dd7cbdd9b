package gamify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lifequest/platform/internal/domain"
	"github.com/lifequest/platform/internal/repository"
)

// In-memory repository fakes. Only the methods the engine touches do
// anything; the rest satisfy the interfaces.

type fakeUsers struct {
	user *domain.User
}

func (f *fakeUsers) FindByID(_ context.Context, _ repository.DBTX, id uuid.UUID) (*domain.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, nil
}

func (f *fakeUsers) FindByIdentifier(context.Context, repository.DBTX, string) (*domain.User, error) {
	return nil, nil
}

func (f *fakeUsers) LockForUpdate(context.Context, pgx.Tx, uuid.UUID) (*domain.User, error) {
	return nil, nil
}

func (f *fakeUsers) Create(context.Context, repository.DBTX, *domain.User) error { return nil }
func (f *fakeUsers) Save(context.Context, repository.DBTX, *domain.User) error   { return nil }

type fakeTasks struct {
	completed int
}

func (f *fakeTasks) FindByID(context.Context, repository.DBTX, uuid.UUID) (*domain.Task, error) {
	return nil, nil
}

func (f *fakeTasks) ListByUser(context.Context, repository.DBTX, uuid.UUID) ([]domain.Task, error) {
	return nil, nil
}

func (f *fakeTasks) Create(context.Context, repository.DBTX, *domain.Task) error { return nil }

func (f *fakeTasks) SetStatus(context.Context, repository.DBTX, uuid.UUID, string) error {
	return nil
}

func (f *fakeTasks) SoftDelete(context.Context, repository.DBTX, uuid.UUID) error { return nil }

func (f *fakeTasks) CountCompleted(context.Context, repository.DBTX, uuid.UUID) (int, error) {
	return f.completed, nil
}

func (f *fakeTasks) MarkOverdue(context.Context, repository.DBTX, uuid.UUID, time.Time) (int64, error) {
	return 0, nil
}

type fakeHabits struct {
	habits map[uuid.UUID]*domain.Habit
	saved  []*domain.Habit
}

func (f *fakeHabits) FindByID(_ context.Context, _ repository.DBTX, id uuid.UUID) (*domain.Habit, error) {
	return f.habits[id], nil
}

func (f *fakeHabits) ListByUser(context.Context, repository.DBTX, uuid.UUID) ([]domain.Habit, error) {
	return nil, nil
}

func (f *fakeHabits) Create(context.Context, repository.DBTX, *domain.Habit) error { return nil }

func (f *fakeHabits) Save(_ context.Context, _ repository.DBTX, h *domain.Habit) error {
	f.saved = append(f.saved, h)
	return nil
}

func (f *fakeHabits) SoftDelete(context.Context, repository.DBTX, uuid.UUID) error { return nil }

type fakeProjects struct {
	boosted int
	delta   int
}

func (f *fakeProjects) FindByID(context.Context, repository.DBTX, uuid.UUID) (*domain.Project, error) {
	return nil, nil
}

func (f *fakeProjects) ListByUser(context.Context, repository.DBTX, uuid.UUID) ([]domain.Project, error) {
	return nil, nil
}

func (f *fakeProjects) Create(context.Context, repository.DBTX, *domain.Project) error { return nil }

func (f *fakeProjects) SetStatus(context.Context, repository.DBTX, uuid.UUID, string) error {
	return nil
}

func (f *fakeProjects) SoftDelete(context.Context, repository.DBTX, uuid.UUID) error { return nil }

func (f *fakeProjects) AddEnergyToActive(_ context.Context, _ repository.DBTX, _ uuid.UUID, delta int) (int64, error) {
	f.boosted++
	f.delta = delta
	return 2, nil
}

type fakeZones struct {
	zones map[uuid.UUID]*domain.Zone
}

func (f *fakeZones) FindByID(_ context.Context, _ repository.DBTX, id uuid.UUID) (*domain.Zone, error) {
	return f.zones[id], nil
}

func (f *fakeZones) ListByUser(context.Context, repository.DBTX, uuid.UUID) ([]domain.Zone, error) {
	return nil, nil
}

func (f *fakeZones) Create(context.Context, repository.DBTX, *domain.Zone) error { return nil }

func (f *fakeZones) LockForUpdate(context.Context, pgx.Tx, uuid.UUID) (*domain.Zone, error) {
	return nil, nil
}

func (f *fakeZones) Save(context.Context, repository.DBTX, *domain.Zone) error { return nil }

type fakeGear struct {
	gear map[uuid.UUID]*domain.Gear
}

func (f *fakeGear) FindByID(_ context.Context, _ repository.DBTX, id uuid.UUID) (*domain.Gear, error) {
	return f.gear[id], nil
}

func (f *fakeGear) ListAvailable(context.Context, repository.DBTX, uuid.UUID) ([]domain.Gear, error) {
	return nil, nil
}

type fakeInventory struct {
	items    map[uuid.UUID]*domain.InventoryItem // keyed by gear id
	setTo    map[uuid.UUID]int                   // item id -> uses
}

func (f *fakeInventory) FindByGear(_ context.Context, _ repository.DBTX, _ uuid.UUID, gearID uuid.UUID) (*domain.InventoryItem, error) {
	return f.items[gearID], nil
}

func (f *fakeInventory) ListByUser(context.Context, repository.DBTX, uuid.UUID) ([]domain.InventoryItem, error) {
	return nil, nil
}

func (f *fakeInventory) Create(context.Context, repository.DBTX, *domain.InventoryItem) error {
	return nil
}

func (f *fakeInventory) SetRemainingUses(_ context.Context, _ repository.DBTX, id uuid.UUID, uses int) error {
	if f.setTo == nil {
		f.setTo = make(map[uuid.UUID]int)
	}
	f.setTo[id] = uses
	return nil
}

type fakeAchievements struct {
	defs     []domain.Achievement
	unlocked map[uuid.UUID]bool
	created  []*domain.AchievementUnlock
	loseRace bool
}

func (f *fakeAchievements) FindByID(context.Context, repository.DBTX, uuid.UUID) (*domain.Achievement, error) {
	return nil, nil
}

func (f *fakeAchievements) ListActive(context.Context, repository.DBTX) ([]domain.Achievement, error) {
	return f.defs, nil
}

func (f *fakeAchievements) Create(context.Context, repository.DBTX, *domain.Achievement) error {
	return nil
}

func (f *fakeAchievements) Update(context.Context, repository.DBTX, *domain.Achievement) error {
	return nil
}

func (f *fakeAchievements) SoftDelete(context.Context, repository.DBTX, uuid.UUID) error { return nil }

func (f *fakeAchievements) UnlockedIDs(context.Context, repository.DBTX, uuid.UUID) (map[uuid.UUID]bool, error) {
	if f.unlocked == nil {
		return map[uuid.UUID]bool{}, nil
	}
	return f.unlocked, nil
}

func (f *fakeAchievements) CreateUnlock(_ context.Context, _ repository.DBTX, u *domain.AchievementUnlock) (bool, error) {
	if f.loseRace {
		return false, nil
	}
	f.created = append(f.created, u)
	return true, nil
}

func (f *fakeAchievements) ListUnlocks(context.Context, repository.DBTX, uuid.UUID) ([]domain.AchievementUnlock, error) {
	return nil, nil
}

type fakeOutbox struct {
	drafts []domain.OutboxDraft
}

func (f *fakeOutbox) Insert(_ context.Context, _ repository.DBTX, d domain.OutboxDraft) error {
	f.drafts = append(f.drafts, d)
	return nil
}

func (f *fakeOutbox) FetchUnpublished(context.Context, repository.DBTX, int) ([]domain.OutboxDraft, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkPublished(context.Context, repository.DBTX, []uuid.UUID) error { return nil }
