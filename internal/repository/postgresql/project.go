package postgresql

import (
	"context"
	"fmt"

	"github.com/fieldserv/backoffice-go/internal/domain/project"
	"github.com/fieldserv/backoffice-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type projectRepository struct {
	db *database.DB
}

func NewProjectRepository(db *database.DB) project.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, driver_id, active, created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	var p project.Project
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.DriverID, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return project.Project{}, project.ErrProjectNotFound
		}
		return project.Project{}, fmt.Errorf("failed to get project: %w", err)
	}

	rows, err := q.Query(ctx, `SELECT employee_id FROM project_workers WHERE project_id = $1`, id)
	if err != nil {
		return project.Project{}, fmt.Errorf("failed to get project workers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var workerID string
		if err := rows.Scan(&workerID); err != nil {
			return project.Project{}, fmt.Errorf("failed to scan project worker: %w", err)
		}
		p.WorkerIDs = append(p.WorkerIDs, workerID)
	}
	if err := rows.Err(); err != nil {
		return project.Project{}, fmt.Errorf("failed to iterate project workers: %w", err)
	}

	return p, nil
}
