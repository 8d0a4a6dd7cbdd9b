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

// JournalService stores journal entries. Creating one is also an event
// emitter for the achievement engine.
type JournalService struct {
	pool      *pgxpool.Pool
	journals  repository.JournalRepository
	outbox    repository.OutboxRepository
	evaluator *gamify.Evaluator
	logger    *slog.Logger
}

// NewJournalService creates a JournalService.
func NewJournalService(
	pool *pgxpool.Pool,
	journals repository.JournalRepository,
	outbox repository.OutboxRepository,
	evaluator *gamify.Evaluator,
	logger *slog.Logger,
) *JournalService {
	return &JournalService{pool: pool, journals: journals, outbox: outbox, evaluator: evaluator, logger: logger}
}

// CreateEntryInput is the payload for a journal entry.
type CreateEntryInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CreateEntry stores a journal entry and feeds the achievement engine.
func (s *JournalService) CreateEntry(ctx context.Context, userID uuid.UUID, in CreateEntryInput) (*domain.JournalEntry, error) {
	if in.Title == "" {
		return nil, domain.ErrValidation("entry title is required")
	}
	now := time.Now().UTC()
	entry := &domain.JournalEntry{
		ID:     uuid.New(),
		UserID: userID,
		Title:  in.Title,
		Body:   in.Body,
	}
	event := domain.Event{Kind: domain.EventJournalEntryCreated, UserID: userID, OccurredAt: now, ItemID: &entry.ID}

	err := inTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.journals.Create(ctx, tx, entry); err != nil {
			return err
		}
		return s.outbox.Insert(ctx, tx, domain.NewEventDraft("journal", event))
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.evaluator.Evaluate(ctx, s.pool, userID, event); err != nil {
		s.logger.Error("achievement evaluation failed",
			"user_id", userID, "event", event.Kind, "error", err)
	}
	return entry, nil
}

// List returns the user's journal entries, newest first.
func (s *JournalService) List(ctx context.Context, userID uuid.UUID) ([]domain.JournalEntry, error) {
	return s.journals.ListByUser(ctx, s.pool, userID)
}
