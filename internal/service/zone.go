package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lifequest/platform/internal/domain"
	"github.com/lifequest/platform/internal/gamify"
	"github.com/lifequest/platform/internal/repository"
)

// ZoneService owns zone CRUD and zone progression reads.
type ZoneService struct {
	pool   *pgxpool.Pool
	zones  repository.ZoneRepository
	logger *slog.Logger
}

// NewZoneService creates a ZoneService.
func NewZoneService(pool *pgxpool.Pool, zones repository.ZoneRepository, logger *slog.Logger) *ZoneService {
	return &ZoneService{pool: pool, zones: zones, logger: logger}
}

// CreateZoneInput is the payload for creating a zone.
type CreateZoneInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Create inserts a new zone at level 1.
func (s *ZoneService) Create(ctx context.Context, userID uuid.UUID, in CreateZoneInput) (*domain.Zone, error) {
	if in.Name == "" {
		return nil, domain.ErrValidation("zone name is required")
	}
	zone := &domain.Zone{
		ID:     uuid.New(),
		UserID: userID,
		Name:   in.Name,
		Color:  in.Color,
		Level:  1,
	}
	if err := s.zones.Create(ctx, s.pool, zone); err != nil {
		return nil, err
	}
	return zone, nil
}

// List returns the user's zones.
func (s *ZoneService) List(ctx context.Context, userID uuid.UUID) ([]domain.Zone, error) {
	return s.zones.ListByUser(ctx, s.pool, userID)
}

// ZoneProgress is a zone with its next level threshold.
type ZoneProgress struct {
	domain.Zone
	NextLevelXP int `json:"next_level_xp"`
}

// Get returns one zone with progression info, enforcing ownership.
func (s *ZoneService) Get(ctx context.Context, userID, zoneID uuid.UUID) (*ZoneProgress, error) {
	zone, err := s.zones.FindByID(ctx, s.pool, zoneID)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, domain.ErrNotFound("zone", zoneID.String())
	}
	if zone.UserID != userID {
		return nil, domain.ErrUnauthorized("zone belongs to another user")
	}
	return &ZoneProgress{
		Zone:        *zone,
		NextLevelXP: gamify.ZoneXPThreshold(zone.Level + 1),
	}, nil
}
