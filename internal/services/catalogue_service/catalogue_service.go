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
	entity = "Catalogue"

	folderPDF        = "catalogues/pdf"
	folderThumbnails = "catalogues/thumbnails"

	MsgPDFRequired = "PDF file is required"
)

type CatalogueService struct {
	log      *slog.Logger
	repo     repository.CatalogueRepository
	uploader *uploader.Uploader
}

func NewCatalogueService(log *slog.Logger, repo repository.CatalogueRepository, storage filestorage.FileStorage) *CatalogueService {
	return &CatalogueService{
		log:      log,
		repo:     repo,
		uploader: uploader.New(log, storage),
	}
}

func (s *CatalogueService) CreateCatalogue(ctx context.Context, in dto.CreateCatalogueInput) (*models.Catalogue, error) {
	const op = "catalogue_service.CreateCatalogue"
	log := s.log.With(slog.String("op", op))

	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	files, err := filestorage.CataloguePolicy.Admit(in.Files)
	if err != nil {
		log.Warn("files rejected", sl.Err(err))
		return nil, err
	}

	byField := filestorage.ByField(files)
	if len(byField[filestorage.FieldPDF]) == 0 {
		return nil, models.NewValidationError(MsgPDFRequired, filestorage.FieldPDF)
	}

	pdf, err := s.uploader.StoreOne(ctx, byField[filestorage.FieldPDF][0], folderPDF)
	if err != nil {
		return nil, err
	}

	thumbnail, err := s.thumbnail(ctx, byField[filestorage.FieldThumbnail], pdf)
	if err != nil {
		s.uploader.DeleteMany(ctx, pdf)
		return nil, err
	}

	category := in.Category
	if category == "" {
		category = models.CategoryGeneral
	}

	catalogue := models.Catalogue{
		Title:       in.Title,
		Description: in.Description,
		Category:    category,
		PDF:         pdf,
		Thumbnail:   thumbnail,
	}

	saved, err := s.repo.SaveCatalogue(ctx, catalogue)
	if err != nil {
		log.Error("failed to save catalogue", sl.Err(err))
		s.uploader.DeleteMany(ctx, catalogue.Assets()...)
		return nil, repoerr.Wrap(op, entity, err)
	}

	log.Info("catalogue created", slog.String("catalogue_id", saved.ID.String()))
	return saved, nil
}

// thumbnail сохраняет загруженную обложку, а без нее пробует построить превью
// первой страницы PDF. nil, если хранилище превью не умеет.
func (s *CatalogueService) thumbnail(ctx context.Context, uploaded []filestorage.File, pdf models.AssetRef) (*models.AssetRef, error) {
	if len(uploaded) > 0 {
		ref, err := s.uploader.StoreOne(ctx, uploaded[0], folderThumbnails)
		if err != nil {
			return nil, err
		}
		return &ref, nil
	}

	if url, ok := s.uploader.DerivePreview(ctx, pdf.Identifier); ok {
		return &models.AssetRef{URL: url, ContentType: "image/jpeg"}, nil
	}

	return nil, nil
}

func (s *CatalogueService) GetCatalogues(ctx context.Context) ([]models.Catalogue, error) {
	const op = "catalogue_service.GetCatalogues"

	catalogues, err := s.repo.GetCatalogues(ctx)
	if err != nil {
		s.log.Error("failed to list catalogues", slog.String("op", op), sl.Err(err))
		return nil, repoerr.Wrap(op, entity, err)
	}

	return catalogues, nil
}

func (s *CatalogueService) GetCatalogueByID(ctx context.Context, id uuid.UUID) (*models.Catalogue, error) {
	const op = "catalogue_service.GetCatalogueByID"

	catalogue, err := s.repo.GetCatalogueByID(ctx, id)
	if err != nil {
		return nil, repoerr.Wrap(op, entity, err)
	}

	return catalogue, nil
}

// UpdateCatalogue заменяет PDF и обложку, если пришли новые файлы. Построенная
// по PDF обложка перестраивается вместе с новым PDF, загруженная вручную остается.
func (s *CatalogueService) UpdateCatalogue(ctx context.Context, id uuid.UUID, in dto.UpdateCatalogueInput) (*models.Catalogue, error) {
	const op = "catalogue_service.UpdateCatalogue"
	log := s.log.With(
		slog.String("op", op),
		slog.String("catalogue_id", id.String()),
	)

	existing, err := s.repo.GetCatalogueByID(ctx, id)
	if err != nil {
		return nil, repoerr.Wrap(op, entity, err)
	}

	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	files, err := filestorage.CataloguePolicy.Admit(in.Files)
	if err != nil {
		log.Warn("files rejected", sl.Err(err))
		return nil, err
	}
	byField := filestorage.ByField(files)

	updates := in.Updates()

	var stored, replaced models.AssetRefs

	if pdfs := byField[filestorage.FieldPDF]; len(pdfs) > 0 {
		pdf, err := s.uploader.StoreOne(ctx, pdfs[0], folderPDF)
		if err != nil {
			return nil, err
		}
		stored = append(stored, pdf)
		replaced = append(replaced, existing.PDF)
		updates["pdf"] = pdf

		derived := existing.Thumbnail == nil || existing.Thumbnail.Identifier == ""
		if derived && len(byField[filestorage.FieldThumbnail]) == 0 {
			thumbnail, _ := s.thumbnail(ctx, nil, pdf)
			updates["thumbnail"] = thumbnail
		}
	}

	if thumbs := byField[filestorage.FieldThumbnail]; len(thumbs) > 0 {
		thumbnail, err := s.uploader.StoreOne(ctx, thumbs[0], folderThumbnails)
		if err != nil {
			s.uploader.DeleteMany(ctx, stored...)
			return nil, err
		}
		stored = append(stored, thumbnail)
		if existing.Thumbnail != nil {
			replaced = append(replaced, *existing.Thumbnail)
		}
		updates["thumbnail"] = &thumbnail
	}

	if len(updates) == 0 {
		return existing, nil
	}

	updated, err := s.repo.UpdateCatalogueFields(ctx, id, updates)
	if err != nil {
		log.Error("failed to update catalogue", sl.Err(err))
		s.uploader.DeleteMany(ctx, stored...)
		return nil, repoerr.Wrap(op, entity, err)
	}

	s.uploader.DeleteMany(ctx, replaced...)

	log.Info("catalogue updated")
	return updated, nil
}

func (s *CatalogueService) DeleteCatalogue(ctx context.Context, id uuid.UUID) error {
	const op = "catalogue_service.DeleteCatalogue"
	log := s.log.With(
		slog.String("op", op),
		slog.String("catalogue_id", id.String()),
	)

	catalogue, err := s.repo.GetCatalogueByID(ctx, id)
	if err != nil {
		return repoerr.Wrap(op, entity, err)
	}

	s.uploader.DeleteMany(ctx, catalogue.Assets()...)

	if err := s.repo.DeleteCatalogue(ctx, id); err != nil {
		log.Error("failed to delete catalogue", sl.Err(err))
		return repoerr.Wrap(op, entity, err)
	}

	log.Info("catalogue deleted")
	return nil
}
