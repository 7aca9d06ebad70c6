package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"architylez/internal/domain/models"
	"architylez/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"
)

var homeMetaColumns = []string{"id", "title", "description", "created_at", "updated_at"}

// HomeMetaRepo работает с единственной строкой home_meta.
// Уникальность держит столбец singleton.
type HomeMetaRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewHomeMetaRepository(db *pgxpool.Pool) *HomeMetaRepo {
	return &HomeMetaRepo{
		db: db,
		sb: newBuilder(),
	}
}

func (r *HomeMetaRepo) GetHomeMeta(ctx context.Context) (*models.HomeMeta, error) {
	const op = "repository.home_meta_repository.GetHomeMeta"

	query, args, err := r.sb.Select(homeMetaColumns...).
		From("home_meta").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	meta, err := scanHomeMeta(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return meta, nil
}

// SaveHomeMeta returns storage.ErrAlreadyExists when the row is already there.
func (r *HomeMetaRepo) SaveHomeMeta(ctx context.Context, meta models.HomeMeta) (*models.HomeMeta, error) {
	const op = "repository.home_meta_repository.SaveHomeMeta"

	query, args, err := r.sb.Insert("home_meta").
		Columns("title", "description").
		Values(meta.Title, meta.Description).
		Suffix("RETURNING " + joinColumns(homeMetaColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := scanHomeMeta(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return saved, nil
}

func (r *HomeMetaRepo) UpdateHomeMetaFields(ctx context.Context, updates map[string]interface{}) (*models.HomeMeta, error) {
	const op = "repository.home_meta_repository.UpdateHomeMetaFields"

	allowedFields := map[string]bool{
		"title":       true,
		"description": true,
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("%s: %w", op, errors.New("no fields to update"))
	}

	fields := make([]string, 0, len(updates))
	for field := range updates {
		if !allowedFields[field] {
			return nil, fmt.Errorf("%s: field '%s' is not allowed for update", op, field)
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)

	updateBuilder := r.sb.Update("home_meta").Set("updated_at", time.Now().UTC())
	for _, field := range fields {
		updateBuilder = updateBuilder.Set(field, updates[field])
	}

	query, args, err := updateBuilder.
		Where("singleton").
		Suffix("RETURNING " + joinColumns(homeMetaColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	meta, err := scanHomeMeta(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return meta, nil
}

func (r *HomeMetaRepo) DeleteHomeMeta(ctx context.Context) error {
	const op = "repository.home_meta_repository.DeleteHomeMeta"

	query, args, err := r.sb.Delete("home_meta").ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func scanHomeMeta(row rowScanner) (*models.HomeMeta, error) {
	var m models.HomeMeta
	if err := row.Scan(&m.ID, &m.Title, &m.Description, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}

	return &m, nil
}
