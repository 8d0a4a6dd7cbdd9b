package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"
	"github.com/lifequest/platform/internal/auth"
	"github.com/lifequest/platform/internal/domain"
	"github.com/lifequest/platform/internal/gamify"
	"github.com/lifequest/platform/internal/repository"
)

// AuthService handles registration and login. Login is also the daily
// touchpoint: it advances the login streak, refills mana on the first login
// of a new day, and feeds the achievement engine.
type AuthService struct {
	pool      *pgxpool.Pool
	users     repository.UserRepository
	outbox    repository.OutboxRepository
	evaluator *gamify.Evaluator
	tokens    *auth.JWTManager
	logger    *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(
	pool *pgxpool.Pool,
	users repository.UserRepository,
	outbox repository.OutboxRepository,
	evaluator *gamify.Evaluator,
	tokens *auth.JWTManager,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		pool:      pool,
		users:     users,
		outbox:    outbox,
		evaluator: evaluator,
		tokens:    tokens,
		logger:    logger,
	}
}

// RegisterInput is the payload for creating an account.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult pairs a user with a fresh access token.
type AuthResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates a new player account at level 1 with a full mana pool.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Username == "" || in.Email == "" {
		return nil, domain.ErrValidation("username and email are required")
	}
	if len(in.Password) < 8 {
		return nil, domain.ErrValidation("password must be at least 8 characters")
	}

	existing, err := s.users.FindByIdentifier(ctx, s.pool, in.Username)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		existing, err = s.users.FindByIdentifier(ctx, s.pool, in.Email)
		if err != nil {
			return nil, err
		}
	}
	if existing != nil {
		return nil, domain.ErrConflict("username or email already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrInternal("hash password", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Level:        1,
		Mana:         gamify.DailyMana(1),
		Effects:      domain.NewEffectState(),
	}
	if err := s.users.Create(ctx, s.pool, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials, updates the login streak and mana for the
// first login of the day, and emits a login event for achievement checks.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	now := time.Now().UTC()

	candidate, err := s.users.FindByIdentifier(ctx, s.pool, strings.TrimSpace(identifier))
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, domain.ErrUnauthorized("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(candidate.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrUnauthorized("invalid credentials")
	}

	event := domain.Event{Kind: domain.EventUserLogin, UserID: candidate.ID, OccurredAt: now}

	var user *domain.User
	err = inTx(ctx, s.pool, func(tx pgx.Tx) error {
		user, err = lockUser(ctx, tx, s.users, candidate.ID)
		if err != nil {
			return err
		}
		if gamify.UpdateLoginStreak(user, now) {
			user.Mana = gamify.DailyMana(user.Level)
		}
		if err := s.users.Save(ctx, tx, user); err != nil {
			return err
		}
		return s.outbox.Insert(ctx, tx, domain.NewEventDraft("user", event))
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.evaluator.Evaluate(ctx, s.pool, user.ID, event); err != nil {
		s.logger.Error("achievement evaluation failed",
			"user_id", user.ID, "event", event.Kind, "error", err)
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user logged in", "user_id", user.ID, "login_streak", user.LoginStreak)
	return &AuthResult{User: user, Token: token}, nil
}
