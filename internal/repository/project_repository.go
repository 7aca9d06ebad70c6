package repository

import (
	"context"
	"fmt"

	"architylez/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

var projectColumns = []string{
	"id", "title", "category", "description", "thumbnail", "images", "created_at", "updated_at",
}

type ProjectRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{
		db: db,
		sb: newBuilder(),
	}
}

func (r *ProjectRepo) SaveProject(ctx context.Context, project models.Project) (*models.Project, error) {
	const op = "repository.project_repository.SaveProject"

	query, args, err := r.sb.Insert("projects").
		Columns("title", "category", "description", "thumbnail", "images").
		Values(
			project.Title,
			project.Category,
			project.Description,
			jsonb(project.Thumbnail),
			jsonb(project.Images),
		).
		Suffix("RETURNING " + joinColumns(projectColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := scanProject(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return saved, nil
}

func (r *ProjectRepo) GetProjectByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	const op = "repository.project_repository.GetProjectByID"

	query, args, err := r.sb.Select(projectColumns...).
		From("projects").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	project, err := scanProject(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return project, nil
}

func (r *ProjectRepo) GetProjects(ctx context.Context) ([]models.Project, error) {
	const op = "repository.project_repository.GetProjects"

	query, args, err := r.sb.Select(projectColumns...).
		From("projects").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		projects = append(projects, *project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return projects, nil
}

func (r *ProjectRepo) UpdateProjectFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Project, error) {
	const op = "repository.project_repository.UpdateProjectFields"

	allowedFields := map[string]bool{
		"title":       true,
		"category":    true,
		"description": true,
		"thumbnail":   true,
		"images":      true,
	}

	query, args, err := buildUpdate(r.sb, "projects", id, updates, allowedFields, projectColumns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	project, err := scanProject(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return project, nil
}

func (r *ProjectRepo) DeleteProject(ctx context.Context, id uuid.UUID) error {
	const op = "repository.project_repository.DeleteProject"

	if err := deleteByID(ctx, r.db, r.sb, "projects", id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func scanProject(row rowScanner) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Category,
		&p.Description,
		&p.Thumbnail,
		&p.Images,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}
