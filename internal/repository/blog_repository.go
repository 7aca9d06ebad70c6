package repository

import (
	"context"
	"fmt"

	"architylez/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

var blogColumns = []string{
	"id", "title", "excerpt", "content", "category", "author",
	"thumbnail", "images", "created_at", "updated_at",
}

type BlogRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewBlogRepository(db *pgxpool.Pool) *BlogRepo {
	return &BlogRepo{
		db: db,
		sb: newBuilder(),
	}
}

func (b *BlogRepo) SaveBlog(ctx context.Context, blog models.Blog) (*models.Blog, error) {
	const op = "repository.blog_repository.SaveBlog"

	query, args, err := b.sb.Insert("blogs").
		Columns(
			"title",
			"excerpt",
			"content",
			"category",
			"author",
			"thumbnail",
			"images",
		).
		Values(
			blog.Title,
			blog.Excerpt,
			jsonb(blog.Content),
			blog.Category,
			blog.Author,
			jsonb(blog.Thumbnail),
			jsonb(blog.Images),
		).
		Suffix("RETURNING " + joinColumns(blogColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := scanBlog(b.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return saved, nil
}

// UpdateBlogFields обновляет только переданные поля
//
//	repo.UpdateBlogFields(ctx, id, map[string]interface{}{
//	    "title":  "Новый заголовок",
//	    "images": append(blog.Images, uploaded...),
//	})
func (b *BlogRepo) UpdateBlogFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Blog, error) {
	const op = "repository.blog_repository.UpdateBlogFields"

	allowedFields := map[string]bool{
		"title":     true,
		"excerpt":   true,
		"content":   true,
		"category":  true,
		"author":    true,
		"thumbnail": true,
		"images":    true,
	}

	query, args, err := buildUpdate(b.sb, "blogs", id, updates, allowedFields, blogColumns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	blog, err := scanBlog(b.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return blog, nil
}

// DeleteBlog -> обычное удаление из базы данных
func (b *BlogRepo) DeleteBlog(ctx context.Context, id uuid.UUID) error {
	const op = "repository.blog_repository.DeleteBlog"

	if err := deleteByID(ctx, b.db, b.sb, "blogs", id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (b *BlogRepo) GetBlogByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	const op = "repository.blog_repository.GetBlogByID"

	sqlQuery, args, err := b.sb.Select(blogColumns...).
		From("blogs").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL query: %w", err)
	}

	blog, err := scanBlog(b.db.QueryRow(ctx, sqlQuery, args...))
	if err != nil {
		return nil, fmt.Errorf("%s failed to get blog: %w", op, mapError(err))
	}

	return blog, nil
}

func (b *BlogRepo) GetBlogs(ctx context.Context) ([]models.Blog, error) {
	const op = "repository.blog_repository.GetBlogs"

	query, args, err := b.sb.Select(blogColumns...).
		From("blogs").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := b.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	blogs := make([]models.Blog, 0)
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		blogs = append(blogs, *blog)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return blogs, nil
}

func scanBlog(row rowScanner) (*models.Blog, error) {
	var (
		blog      models.Blog
		thumbnail models.AssetRef
	)

	err := row.Scan(
		&blog.ID,
		&blog.Title,
		&blog.Excerpt,
		&blog.Content,
		&blog.Category,
		&blog.Author,
		&thumbnail,
		&blog.Images,
		&blog.CreatedAt,
		&blog.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	blog.Thumbnail = thumbnail.Ptr()
	return &blog, nil
}
