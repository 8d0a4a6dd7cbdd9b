package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lifequest/platform/internal/domain"
	"github.com/lifequest/platform/internal/repository"
)

// AchievementService exposes the achievement catalog to players and its
// management to administrators. Unlock decisions belong to the evaluator,
// never to this service.
type AchievementService struct {
	pool         *pgxpool.Pool
	achievements repository.AchievementRepository
	logger       *slog.Logger
}

// NewAchievementService creates an AchievementService.
func NewAchievementService(pool *pgxpool.Pool, achievements repository.AchievementRepository, logger *slog.Logger) *AchievementService {
	return &AchievementService{pool: pool, achievements: achievements, logger: logger}
}

// ListCatalog returns all active achievement definitions. Surprise
// achievements are included; their predicate keys are not secret, their
// conditions are simply not advertised as progress bars.
func (s *AchievementService) ListCatalog(ctx context.Context) ([]domain.Achievement, error) {
	return s.achievements.ListActive(ctx, s.pool)
}

// ListUnlocked returns the user's unlocks, newest first.
func (s *AchievementService) ListUnlocked(ctx context.Context, userID uuid.UUID) ([]domain.AchievementUnlock, error) {
	return s.achievements.ListUnlocks(ctx, s.pool, userID)
}

// AchievementInput is the admin payload for catalog writes.
type AchievementInput struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	ConditionType  string `json:"condition_type"`
	Threshold      int    `json:"threshold"`
	HonorificTitle string `json:"honorific_title"`
	IsSurprise     bool   `json:"is_surprise"`
	PredicateKey   string `json:"predicate_key"`
}

func (in AchievementInput) validate() error {
	if in.Name == "" {
		return domain.ErrValidation("achievement name is required")
	}
	switch domain.ConditionType(in.ConditionType) {
	case domain.ConditionTasksCompleted, domain.ConditionHabitStreak, domain.ConditionLoginStreak:
		if in.Threshold <= 0 {
			return domain.ErrValidation("threshold must be positive")
		}
	case domain.ConditionSurprise:
		if in.PredicateKey == "" {
			return domain.ErrValidation("surprise achievements need a predicate key")
		}
	default:
		return domain.ErrValidation("unknown condition type")
	}
	return nil
}

// Create adds a catalog definition. Admin only.
func (s *AchievementService) Create(ctx context.Context, in AchievementInput) (*domain.Achievement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	a := &domain.Achievement{
		ID:             uuid.New(),
		Name:           in.Name,
		Description:    in.Description,
		ConditionType:  domain.ConditionType(in.ConditionType),
		Threshold:      in.Threshold,
		HonorificTitle: in.HonorificTitle,
		IsSurprise:     in.IsSurprise,
		PredicateKey:   in.PredicateKey,
	}
	if err := s.achievements.Create(ctx, s.pool, a); err != nil {
		return nil, err
	}
	s.logger.Info("achievement created", "achievement_id", a.ID, "name", a.Name)
	return a, nil
}

// Update rewrites a catalog definition. Admin only.
func (s *AchievementService) Update(ctx context.Context, id uuid.UUID, in AchievementInput) (*domain.Achievement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	a, err := s.achievements.FindByID(ctx, s.pool, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound("achievement", id.String())
	}
	a.Name = in.Name
	a.Description = in.Description
	a.ConditionType = domain.ConditionType(in.ConditionType)
	a.Threshold = in.Threshold
	a.HonorificTitle = in.HonorificTitle
	a.IsSurprise = in.IsSurprise
	a.PredicateKey = in.PredicateKey
	if err := s.achievements.Update(ctx, s.pool, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete retires a definition. Existing unlocks are kept.
func (s *AchievementService) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := s.achievements.FindByID(ctx, s.pool, id)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound("achievement", id.String())
	}
	return s.achievements.SoftDelete(ctx, s.pool, id)
}
