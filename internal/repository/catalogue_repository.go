package repository

import (
	"context"
	"fmt"

	"architylez/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

var catalogueColumns = []string{
	"id", "title", "description", "category", "pdf", "thumbnail", "created_at", "updated_at",
}

type CatalogueRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewCatalogueRepository(db *pgxpool.Pool) *CatalogueRepo {
	return &CatalogueRepo{
		db: db,
		sb: newBuilder(),
	}
}

func (r *CatalogueRepo) SaveCatalogue(ctx context.Context, catalogue models.Catalogue) (*models.Catalogue, error) {
	const op = "repository.catalogue_repository.SaveCatalogue"

	query, args, err := r.sb.Insert("catalogues").
		Columns("title", "description", "category", "pdf", "thumbnail").
		Values(
			catalogue.Title,
			catalogue.Description,
			catalogue.Category,
			jsonb(catalogue.PDF),
			jsonb(catalogue.Thumbnail),
		).
		Suffix("RETURNING " + joinColumns(catalogueColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := scanCatalogue(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return saved, nil
}

func (r *CatalogueRepo) GetCatalogueByID(ctx context.Context, id uuid.UUID) (*models.Catalogue, error) {
	const op = "repository.catalogue_repository.GetCatalogueByID"

	query, args, err := r.sb.Select(catalogueColumns...).
		From("catalogues").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	catalogue, err := scanCatalogue(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return catalogue, nil
}

func (r *CatalogueRepo) GetCatalogues(ctx context.Context) ([]models.Catalogue, error) {
	const op = "repository.catalogue_repository.GetCatalogues"

	query, args, err := r.sb.Select(catalogueColumns...).
		From("catalogues").
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

	catalogues := make([]models.Catalogue, 0)
	for rows.Next() {
		catalogue, err := scanCatalogue(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		catalogues = append(catalogues, *catalogue)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return catalogues, nil
}

func (r *CatalogueRepo) UpdateCatalogueFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Catalogue, error) {
	const op = "repository.catalogue_repository.UpdateCatalogueFields"

	allowedFields := map[string]bool{
		"title":       true,
		"description": true,
		"category":    true,
		"pdf":         true,
		"thumbnail":   true,
	}

	query, args, err := buildUpdate(r.sb, "catalogues", id, updates, allowedFields, catalogueColumns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	catalogue, err := scanCatalogue(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return catalogue, nil
}

func (r *CatalogueRepo) DeleteCatalogue(ctx context.Context, id uuid.UUID) error {
	const op = "repository.catalogue_repository.DeleteCatalogue"

	if err := deleteByID(ctx, r.db, r.sb, "catalogues", id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func scanCatalogue(row rowScanner) (*models.Catalogue, error) {
	var (
		c         models.Catalogue
		thumbnail models.AssetRef
	)

	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.Category,
		&c.PDF,
		&thumbnail,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Thumbnail = thumbnail.Ptr()
	return &c, nil
}
