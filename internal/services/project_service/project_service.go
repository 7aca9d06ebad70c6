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
	entity = "Project"

	folderThumbnails = "projects/thumbnails"
	folderImages     = "projects/images"

	// новые изображения при обновлении
	imagesMode = uploader.ImagesAppend

	MsgThumbnailRequired = "Thumbnail is required"
)

type ProjectService struct {
	log      *slog.Logger
	repo     repository.ProjectRepository
	uploader *uploader.Uploader
}

func NewProjectService(log *slog.Logger, repo repository.ProjectRepository, storage filestorage.FileStorage) *ProjectService {
	return &ProjectService{
		log:      log,
		repo:     repo,
		uploader: uploader.New(log, storage),
	}
}

func (s *ProjectService) CreateProject(ctx context.Context, in dto.CreateProjectInput) (*models.Project, error) {
	const op = "project_service.CreateProject"
	log := s.log.With(slog.String("op", op))

	if err := validate.Struct(in); err != nil {
		log.Warn("invalid project input", sl.Err(err))
		return nil, err
	}

	files, err := filestorage.ProjectPolicy.Admit(in.Files)
	if err != nil {
		log.Warn("files rejected", sl.Err(err))
		return nil, err
	}

	byField := filestorage.ByField(files)
	if len(byField[filestorage.FieldThumbnail]) == 0 {
		return nil, models.NewValidationError(MsgThumbnailRequired, filestorage.FieldThumbnail)
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

	project := models.Project{
		Title:       in.Title,
		Category:    in.Category,
		Description: in.Description,
		Thumbnail:   thumbnail,
		Images:      images,
	}

	saved, err := s.repo.SaveProject(ctx, project)
	if err != nil {
		log.Error("failed to save project", sl.Err(err))
		s.uploader.DeleteMany(ctx, project.Assets()...)
		return nil, repoerr.Wrap(op, entity, err)
	}

	log.Info("project created", slog.String("project_id", saved.ID.String()))
	return saved, nil
}

func (s *ProjectService) GetProjects(ctx context.Context) ([]models.Project, error) {
	const op = "project_service.GetProjects"

	projects, err := s.repo.GetProjects(ctx)
	if err != nil {
		s.log.Error("failed to list projects", slog.String("op", op), sl.Err(err))
		return nil, repoerr.Wrap(op, entity, err)
	}

	return projects, nil
}

func (s *ProjectService) GetProjectByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	const op = "project_service.GetProjectByID"

	project, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		return nil, repoerr.Wrap(op, entity, err)
	}

	return project, nil
}

// UpdateProject работает как у блога: обложка заменяется, картинки дописываются.
func (s *ProjectService) UpdateProject(ctx context.Context, id uuid.UUID, in dto.UpdateProjectInput) (*models.Project, error) {
	const op = "project_service.UpdateProject"
	log := s.log.With(
		slog.String("op", op),
		slog.String("project_id", id.String()),
	)

	existing, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		return nil, repoerr.Wrap(op, entity, err)
	}

	files, err := filestorage.ProjectPolicy.Admit(in.Files)
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

	updated, err := s.repo.UpdateProjectFields(ctx, id, updates)
	if err != nil {
		log.Error("failed to update project", sl.Err(err))
		s.uploader.DeleteMany(ctx, stored...)
		return nil, repoerr.Wrap(op, entity, err)
	}

	s.uploader.DeleteMany(ctx, replaced...)

	log.Info("project updated")
	return updated, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	const op = "project_service.DeleteProject"
	log := s.log.With(
		slog.String("op", op),
		slog.String("project_id", id.String()),
	)

	project, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		return repoerr.Wrap(op, entity, err)
	}

	s.uploader.DeleteMany(ctx, project.Assets()...)

	if err := s.repo.DeleteProject(ctx, id); err != nil {
		log.Error("failed to delete project", sl.Err(err))
		return repoerr.Wrap(op, entity, err)
	}

	log.Info("project deleted")
	return nil
}
