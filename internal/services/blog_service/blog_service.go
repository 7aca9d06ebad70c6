package services

import (
	"context"
	"log/slog"

	"architylez/internal/domain/models"
	"architylez/internal/lib/logger/sl"
	"architylez/internal/lib/repoerr"
	"architylez/internal/lib/validate"
	"architylez/internal/repository"
	"architylez/internal/services/uploader"
	"architylez/internal/storage/filestorage"
	"architylez/internal/transport/http/dto"

	"github.com/google/uuid"
)

const (
	entity = "Blog"

	folderThumbnails = "blogs/thumbnails"
	folderImages     = "blogs/images"

	// новые изображения при обновлении
	imagesMode = uploader.ImagesAppend
)

type BlogService struct {
	log      *slog.Logger
	repo     repository.BlogRepository
	uploader *uploader.Uploader
}

func NewBlogService(log *slog.Logger, repo repository.BlogRepository, storage filestorage.FileStorage) *BlogService {
	return &BlogService{
		log:      log,
		repo:     repo,
		uploader: uploader.New(log, storage),
	}
}

// CreateBlog создает пост. Обложка и картинки необязательны.
func (s *BlogService) CreateBlog(ctx context.Context, in dto.CreateBlogInput) (*models.Blog, error) {
	const op = "blog_service.CreateBlog"
	log := s.log.With(slog.String("op", op))

	if err := validate.Struct(in); err != nil {
		log.Warn("invalid blog input", sl.Err(err))
		return nil, err
	}

	files, err := filestorage.BlogPolicy.Admit(in.Files)
	if err != nil {
		log.Warn("files rejected", sl.Err(err))
		return nil, err
	}
	byField := filestorage.ByField(files)

	blog := models.Blog{
		Title:    in.Title,
		Excerpt:  in.Excerpt,
		Content:  in.Content,
		Category: in.Category,
		Author:   in.Author,
	}

	if thumbs := byField[filestorage.FieldThumbnail]; len(thumbs) > 0 {
		thumbnail, err := s.uploader.StoreOne(ctx, thumbs[0], folderThumbnails)
		if err != nil {
			return nil, err
		}
		blog.Thumbnail = &thumbnail
	}

	images, err := s.uploader.StoreMany(ctx, byField[filestorage.FieldImages], folderImages)
	if err != nil {
		s.uploader.DeleteMany(ctx, blog.Assets()...)
		return nil, err
	}
	blog.Images = images

	saved, err := s.repo.SaveBlog(ctx, blog)
	if err != nil {
		log.Error("failed to save blog", sl.Err(err))
		s.uploader.DeleteMany(ctx, blog.Assets()...)
		return nil, repoerr.Wrap(op, entity, err)
	}

	log.Info("blog created", slog.String("blog_id", saved.ID.String()))
	return saved, nil
}

func (s *BlogService) GetBlogs(ctx context.Context) ([]models.Blog, error) {
	const op = "blog_service.GetBlogs"

	blogs, err := s.repo.GetBlogs(ctx)
	if err != nil {
		s.log.Error("failed to list blogs", slog.String("op", op), sl.Err(err))
		return nil, repoerr.Wrap(op, entity, err)
	}

	return blogs, nil
}

func (s *BlogService) GetBlogByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	const op = "blog_service.GetBlogByID"

	blog, err := s.repo.GetBlogByID(ctx, id)
	if err != nil {
		return nil, repoerr.Wrap(op, entity, err)
	}

	return blog, nil
}

// UpdateBlog: новая обложка заменяет старую, новые картинки дописываются к списку.
func (s *BlogService) UpdateBlog(ctx context.Context, id uuid.UUID, in dto.UpdateBlogInput) (*models.Blog, error) {
	const op = "blog_service.UpdateBlog"
	log := s.log.With(
		slog.String("op", op),
		slog.String("blog_id", id.String()),
	)

	existing, err := s.repo.GetBlogByID(ctx, id)
	if err != nil {
		return nil, repoerr.Wrap(op, entity, err)
	}

	files, err := filestorage.BlogPolicy.Admit(in.Files)
	if err != nil {
		log.Warn("files rejected", sl.Err(err))
		return nil, err
	}
	byField := filestorage.ByField(files)

	updates := in.Updates()

	var stored, replaced models.AssetRefs

	if thumbs := byField[filestorage.FieldThumbnail]; len(thumbs) > 0 {
		thumbnail, err := s.uploader.StoreOne(ctx, thumbs[0], folderThumbnails)
		if err != nil {
			return nil, err
		}
		stored = append(stored, thumbnail)
		if existing.Thumbnail != nil {
			replaced = append(replaced, *existing.Thumbnail)
		}
		updates["thumbnail"] = &thumbnail
	}

	if newImages := byField[filestorage.FieldImages]; len(newImages) > 0 {
		upd, err := s.uploader.StoreImages(ctx, imagesMode, existing.Images, newImages, folderImages)
		if err != nil {
			s.uploader.DeleteMany(ctx, stored...)
			return nil, err
		}
		stored = append(stored, upd.Stored...)
		replaced = append(replaced, upd.Replaced...)
		updates["images"] = upd.Images
	}

	if len(updates) == 0 {
		return existing, nil
	}

	updated, err := s.repo.UpdateBlogFields(ctx, id, updates)
	if err != nil {
		log.Error("failed to update blog", sl.Err(err))
		s.uploader.DeleteMany(ctx, stored...)
		return nil, repoerr.Wrap(op, entity, err)
	}

	s.uploader.DeleteMany(ctx, replaced...)

	log.Info("blog updated")
	return updated, nil
}

func (s *BlogService) DeleteBlog(ctx context.Context, id uuid.UUID) error {
	const op = "blog_service.DeleteBlog"
	log := s.log.With(
		slog.String("op", op),
		slog.String("blog_id", id.String()),
	)

	blog, err := s.repo.GetBlogByID(ctx, id)
	if err != nil {
		return repoerr.Wrap(op, entity, err)
	}

	s.uploader.DeleteMany(ctx, blog.Assets()...)

	if err := s.repo.DeleteBlog(ctx, id); err != nil {
		log.Error("failed to delete blog", sl.Err(err))
		return repoerr.Wrap(op, entity, err)
	}

	log.Info("blog deleted")
	return nil
}
