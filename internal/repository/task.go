package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lifequest/platform/internal/domain"
)

type taskRepo struct{}

// NewTaskRepository returns a pgx-backed TaskRepository.
func NewTaskRepository() TaskRepository {
	return &taskRepo{}
}

const taskColumns = `id, user_id, project_id, name, description, status, energy, points,
	priority, start_date, end_date, created_at`

func (r *taskRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Task, error) {
	row := db.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks WHERE id = $1 AND deleted = false`, id)
	return scanTask(row)
}

func (r *taskRepo) ListByUser(ctx context.Context, db DBTX, userID uuid.UUID) ([]domain.Task, error) {
	rows, err := db.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks WHERE user_id = $1 AND deleted = false
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *taskRepo) Create(ctx context.Context, db DBTX, t *domain.Task) error {
	_, err := db.Exec(ctx, `
		INSERT INTO tasks (id, user_id, project_id, name, description, status, energy,
			points, priority, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		t.ID, t.UserID, t.ProjectID, t.Name, t.Description, t.Status, t.Energy,
		t.Points, t.Priority, t.StartDate, t.EndDate,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *taskRepo) SetStatus(ctx context.Context, db DBTX, id uuid.UUID, status string) error {
	_, err := db.Exec(ctx, `UPDATE tasks SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set task status: %w", err)
	}
	return nil
}

func (r *taskRepo) SoftDelete(ctx context.Context, db DBTX, id uuid.UUID) error {
	_, err := db.Exec(ctx, `UPDATE tasks SET deleted = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (r *taskRepo) CountCompleted(ctx context.Context, db DBTX, userID uuid.UUID) (int, error) {
	var count int
	err := db.QueryRow(ctx, `
		SELECT count(*) FROM tasks
		WHERE user_id = $1 AND status = $2 AND deleted = false`,
		userID, domain.StatusCompleted).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count completed tasks: %w", err)
	}
	return count, nil
}

func (r *taskRepo) MarkOverdue(ctx context.Context, db DBTX, userID uuid.UUID, today time.Time) (int64, error) {
	tag, err := db.Exec(ctx, `
		UPDATE tasks SET status = $3
		WHERE user_id = $1 AND deleted = false AND status = $4
		  AND end_date IS NOT NULL AND end_date < $2`,
		userID, today, domain.StatusOverdue, domain.StatusPending)
	if err != nil {
		return 0, fmt.Errorf("mark overdue tasks: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.UserID, &t.ProjectID, &t.Name, &t.Description, &t.Status,
		&t.Energy, &t.Points, &t.Priority, &t.StartDate, &t.EndDate, &t.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &t, nil
}
