package repository

import (
	"context"
	"fmt"

	"architylez/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"
)

var productColumns = []string{
	"id", "title", "description", "thumbnail", "images",
	"size", "category", "finish", "filter_size", "actual_size",
	"material_type", "application", "brand", "quality",
	"coverage_area", "pcs_per_box", "meta_title", "meta_description",
	"created_at", "updated_at",
}

type ProductRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{
		db: db,
		sb: newBuilder(),
	}
}

func (r *ProductRepo) SaveProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	const op = "repository.product_repository.SaveProduct"

	query, args, err := r.sb.Insert("products").
		Columns(
			"title",
			"description",
			"thumbnail",
			"images",
			"size",
			"category",
			"finish",
			"filter_size",
			"actual_size",
			"material_type",
			"application",
			"brand",
			"quality",
			"coverage_area",
			"pcs_per_box",
			"meta_title",
			"meta_description",
		).
		Values(
			product.Title,
			product.Description,
			jsonb(product.Thumbnail),
			jsonb(product.Images),
			nonNilStrings(product.Size),
			product.Category,
			nonNilStrings(product.Finish),
			nonNilStrings(product.FilterSize),
			product.ActualSize,
			product.MaterialType,
			nonNilStrings(product.Application),
			product.Brand,
			product.Quality,
			product.CoverageArea,
			product.PcsPerBox,
			product.MetaTitle,
			product.MetaDescription,
		).
		Suffix("RETURNING " + joinColumns(productColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := scanProduct(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return saved, nil
}

func (r *ProductRepo) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	const op = "repository.product_repository.GetProductByID"

	query, args, err := r.sb.Select(productColumns...).
		From("products").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	product, err := scanProduct(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return product, nil
}

// GetProducts возвращает товары от новых к старым. Finish совпадает,
// если у товара есть хотя бы одна из переданных отделок.
func (r *ProductRepo) GetProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	const op = "repository.product_repository.GetProducts"

	queryBuilder := r.sb.Select(productColumns...).From("products")

	if filter.Category != "" {
		queryBuilder = queryBuilder.Where(sq.Eq{"category": filter.Category})
	}
	if len(filter.Finish) > 0 {
		queryBuilder = queryBuilder.Where("finish && ?", pq.Array(filter.Finish))
	}

	query, args, err := queryBuilder.OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return products, nil
}

func (r *ProductRepo) UpdateProductFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Product, error) {
	const op = "repository.product_repository.UpdateProductFields"

	allowedFields := map[string]bool{
		"title":            true,
		"description":      true,
		"thumbnail":        true,
		"images":           true,
		"size":             true,
		"category":         true,
		"finish":           true,
		"filter_size":      true,
		"actual_size":      true,
		"material_type":    true,
		"application":      true,
		"brand":            true,
		"quality":          true,
		"coverage_area":    true,
		"pcs_per_box":      true,
		"meta_title":       true,
		"meta_description": true,
	}

	query, args, err := buildUpdate(r.sb, "products", id, updates, allowedFields, productColumns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	product, err := scanProduct(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return product, nil
}

func (r *ProductRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	const op = "repository.product_repository.DeleteProduct"

	if err := deleteByID(ctx, r.db, r.sb, "products", id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Thumbnail,
		&p.Images,
		&p.Size,
		&p.Category,
		&p.Finish,
		&p.FilterSize,
		&p.ActualSize,
		&p.MaterialType,
		&p.Application,
		&p.Brand,
		&p.Quality,
		&p.CoverageArea,
		&p.PcsPerBox,
		&p.MetaTitle,
		&p.MetaDescription,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}
