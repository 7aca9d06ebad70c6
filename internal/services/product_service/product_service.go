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
	entity = "Product"

	folderThumbnails = "products/thumbnails"
	folderImages     = "products/images"

	// новые изображения при обновлении
	imagesMode = uploader.ImagesReplace

	MsgThumbnailRequired = "Thumbnail is required"
	MsgImagesRequired    = "At least one product image is required"
)

type ProductService struct {
	log      *slog.Logger
	repo     repository.ProductRepository
	uploader *uploader.Uploader
}

func NewProductService(log *slog.Logger, repo repository.ProductRepository, storage filestorage.FileStorage) *ProductService {
	return &ProductService{
		log:      log,
		repo:     repo,
		uploader: uploader.New(log, storage),
	}
}

// CreateProduct проверяет поля и файлы, загружает их и сохраняет товар.
// При ошибке сохранения загруженные файлы удаляются.
func (s *ProductService) CreateProduct(ctx context.Context, in dto.CreateProductInput) (*models.Product, error) {
	const op = "product_service.CreateProduct"
	log := s.log.With(slog.String("op", op))

	if err := validate.Struct(in); err != nil {
		log.Warn("invalid product input", sl.Err(err))
		return nil, err
	}

	files, err := filestorage.ProductPolicy.Admit(in.Files)
	if err != nil {
		log.Warn("files rejected", sl.Err(err))
		return nil, err
	}

	byField := filestorage.ByField(files)
	if len(byField[filestorage.FieldThumbnail]) == 0 {
		return nil, models.NewValidationError(MsgThumbnailRequired, filestorage.FieldThumbnail)
	}
	if len(byField[filestorage.FieldImages]) == 0 {
		return nil, models.NewValidationError(MsgImagesRequired, filestorage.FieldImages)
	}

	thumbnail, err := s.uploader.StoreOne(ctx, byField[filestorage.FieldThumbnail][0], folderThumbnails)
	if err != nil {
		return nil, err
	}

	images, err := s.uploader.StoreMany(ctx, byField[filestorage.FieldImages], folderImages)
	if err != nil {
		s.uploader.DeleteMany(ctx, thumbnail)
		return nil, err
	}

	product := in.ToDomain()
	product.Thumbnail = thumbnail
	product.Images = images

	saved, err := s.repo.SaveProduct(ctx, product)
	if err != nil {
		log.Error("failed to save product", sl.Err(err))
		s.uploader.DeleteMany(ctx, product.Assets()...)
		return nil, repoerr.Wrap(op, entity, err)
	}

	log.Info("product created", slog.String("product_id", saved.ID.String()))
	return saved, nil
}

func (s *ProductService) GetProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	const op = "product_service.GetProducts"

	products, err := s.repo.GetProducts(ctx, filter)
	if err != nil {
		s.log.Error("failed to list products", slog.String("op", op), sl.Err(err))
		return nil, repoerr.Wrap(op, entity, err)
	}

	return products, nil
}

func (s *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	const op = "product_service.GetProductByID"

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, repoerr.Wrap(op, entity, err)
	}

	return product, nil
}

// UpdateProduct применяет частичное обновление. Новый thumbnail заменяет старый,
// новые images заменяют весь список; старые файлы удаляются после сохранения.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, in dto.UpdateProductInput) (*models.Product, error) {
	const op = "product_service.UpdateProduct"
	log := s.log.With(
		slog.String("op", op),
		slog.String("product_id", id.String()),
	)

	existing, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, repoerr.Wrap(op, entity, err)
	}

	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	files, err := filestorage.ProductPolicy.Admit(in.Files)
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
		replaced = append(replaced, existing.Thumbnail)
		updates["thumbnail"] = thumbnail
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

	updated, err := s.repo.UpdateProductFields(ctx, id, updates)
	if err != nil {
		log.Error("failed to update product", sl.Err(err))
		s.uploader.DeleteMany(ctx, stored...)
		return nil, repoerr.Wrap(op, entity, err)
	}

	s.uploader.DeleteMany(ctx, replaced...)

	log.Info("product updated")
	return updated, nil
}

// DeleteProduct удаляет файлы товара (ошибки только в лог) и саму запись.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	const op = "product_service.DeleteProduct"
	log := s.log.With(
		slog.String("op", op),
		slog.String("product_id", id.String()),
	)

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return repoerr.Wrap(op, entity, err)
	}

	s.uploader.DeleteMany(ctx, product.Assets()...)

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		log.Error("failed to delete product", sl.Err(err))
		return repoerr.Wrap(op, entity, err)
	}

	log.Info("product deleted")
	return nil
}
