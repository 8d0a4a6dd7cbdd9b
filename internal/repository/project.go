package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lifequest/platform/internal/domain"
)

type projectRepo struct{}

// NewProjectRepository returns a pgx-backed ProjectRepository.
func NewProjectRepository() ProjectRepository {
	return &projectRepo{}
}

const projectColumns = `id, user_id, zone_id, name, description, status, energy, points, created_at`

func (r *projectRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Project, error) {
	row := db.QueryRow(ctx, `
		SELECT `+projectColumns+`
		FROM projects WHERE id = $1 AND deleted = false`, id)
	return scanProject(row)
}

func (r *projectRepo) ListByUser(ctx context.Context, db DBTX, userID uuid.UUID) ([]domain.Project, error) {
	rows, err := db.Query(ctx, `
		SELECT `+projectColumns+`
		FROM projects WHERE user_id = $1 AND deleted = false
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (r *projectRepo) Create(ctx context.Context, db DBTX, p *domain.Project) error {
	_, err := db.Exec(ctx, `
		INSERT INTO projects (id, user_id, zone_id, name, description, status, energy, points)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.UserID, p.ZoneID, p.Name, p.Description, p.Status, p.Energy, p.Points,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *projectRepo) SetStatus(ctx context.Context, db DBTX, id uuid.UUID, status string) error {
	_, err := db.Exec(ctx, `UPDATE projects SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set project status: %w", err)
	}
	return nil
}

func (r *projectRepo) SoftDelete(ctx context.Context, db DBTX, id uuid.UUID) error {
	_, err := db.Exec(ctx, `UPDATE projects SET deleted = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

func (r *projectRepo) AddEnergyToActive(ctx context.Context, db DBTX, userID uuid.UUID, delta int) (int64, error) {
	tag, err := db.Exec(ctx, `
		UPDATE projects SET energy = energy + $2
		WHERE user_id = $1 AND deleted = false AND status = $3`,
		userID, delta, domain.StatusActive)
	if err != nil {
		return 0, fmt.Errorf("boost active projects: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.UserID, &p.ZoneID, &p.Name, &p.Description, &p.Status,
		&p.Energy, &p.Points, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan project: %w", err)
	}
	return &p, nil
}
