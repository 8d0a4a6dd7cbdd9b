package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lifequest/platform/internal/domain"
)

type journalRepo struct{}

// NewJournalRepository returns a pgx-backed JournalRepository.
func NewJournalRepository() JournalRepository {
	return &journalRepo{}
}

func (r *journalRepo) Create(ctx context.Context, db DBTX, e *domain.JournalEntry) error {
	_, err := db.Exec(ctx, `
		INSERT INTO journal_entries (id, user_id, title, body)
		VALUES ($1, $2, $3, $4)`,
		e.ID, e.UserID, e.Title, e.Body,
	)
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

func (r *journalRepo) ListByUser(ctx context.Context, db DBTX, userID uuid.UUID) ([]domain.JournalEntry, error) {
	rows, err := db.Query(ctx, `
		SELECT id, user_id, title, body, created_at
		FROM journal_entries WHERE user_id = $1 AND deleted = false
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		var e domain.JournalEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Body, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
