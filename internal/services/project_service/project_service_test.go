package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"architylez/internal/domain/models"
	services "architylez/internal/services/project_service"
	"architylez/internal/storage"
	"architylez/internal/storage/filestorage"
	"architylez/internal/transport/http/dto"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) SaveProject(ctx context.Context, project models.Project) (*models.Project, error) {
	args := m.Called(ctx, project)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectRepository) GetProjectByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectRepository) GetProjects(ctx context.Context) ([]models.Project, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockProjectRepository) UpdateProjectFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Project, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectRepository) DeleteProject(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Store(ctx context.Context, file filestorage.File, folder string) (models.AssetRef, error) {
	args := m.Called(ctx, file, folder)
	return args.Get(0).(models.AssetRef), args.Error(1)
}

func (m *MockFileStorage) Delete(ctx context.Context, identifier string) error {
	args := m.Called(ctx, identifier)
	return args.Error(0)
}

func newService() (*services.ProjectService, *MockProjectRepository, *MockFileStorage) {
	repo := new(MockProjectRepository)
	st := new(MockFileStorage)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return services.NewProjectService(log, repo, st), repo, st
}

func webp(field string) filestorage.File {
	return filestorage.File{Field: field, Filename: gofakeit.Word() + ".webp", ContentType: "image/webp", Data: []byte("RIFF....WEBPVP8 ")}
}

func TestProjectService_CreateProject(t *testing.T) {
	ctx := context.Background()

	t.Run("success with empty description", func(t *testing.T) {
		svc, repo, st := newService()

		title := gofakeit.Company()
		st.On("Store", mock.Anything, mock.Anything, "projects/thumbnails").
			Return(models.AssetRef{URL: "t", Identifier: "projects/t.webp"}, nil).Once()
		st.On("Store", mock.Anything, mock.Anything, "projects/images").
			Return(models.AssetRef{URL: "i", Identifier: "projects/i.webp"}, nil).Twice()
		repo.On("SaveProject", ctx, mock.MatchedBy(func(p models.Project) bool {
			return p.Title == title && p.Description == "" && len(p.Images) == 2
		})).Return(&models.Project{ID: uuid.New(), Title: title}, nil).Once()

		project, err := svc.CreateProject(ctx, dto.CreateProjectInput{
			Title:    title,
			Category: "Residential",
			Files: []filestorage.File{
				webp(filestorage.FieldThumbnail),
				webp(filestorage.FieldImages),
				webp(filestorage.FieldImages),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, title, project.Title)
		st.AssertExpectations(t)
	})

	t.Run("thumbnail required", func(t *testing.T) {
		svc, repo, _ := newService()

		_, err := svc.CreateProject(ctx, dto.CreateProjectInput{Title: "a", Category: "b"})

		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Thumbnail is required", verr.Message)
		repo.AssertNotCalled(t, "SaveProject", mock.Anything, mock.Anything)
	})

	t.Run("pdf is not an image", func(t *testing.T) {
		svc, _, st := newService()

		_, err := svc.CreateProject(ctx, dto.CreateProjectInput{
			Title:    "a",
			Category: "b",
			Files: []filestorage.File{
				{Field: filestorage.FieldThumbnail, Filename: "x.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")},
			},
		})

		var merr *models.UnsupportedMediaError
		require.ErrorAs(t, err, &merr)
		st.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProjectService_UpdateProject(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("description can be cleared", func(t *testing.T) {
		svc, repo, _ := newService()

		empty := ""
		repo.On("GetProjectByID", ctx, id).Return(&models.Project{ID: id, Description: "old"}, nil).Once()
		repo.On("UpdateProjectFields", ctx, id, map[string]interface{}{"description": ""}).
			Return(&models.Project{ID: id}, nil).Once()

		project, err := svc.UpdateProject(ctx, id, dto.UpdateProjectInput{Description: &empty})
		require.NoError(t, err)
		assert.Empty(t, project.Description)
	})

	t.Run("images appended and thumbnail replaced", func(t *testing.T) {
		svc, repo, st := newService()

		repo.On("GetProjectByID", ctx, id).Return(&models.Project{
			ID:        id,
			Thumbnail: models.AssetRef{URL: "t0", Identifier: "projects/t0.webp"},
			Images:    models.AssetRefs{{URL: "i0", Identifier: "projects/i0.webp"}},
		}, nil).Once()
		st.On("Store", mock.Anything, mock.Anything, "projects/thumbnails").
			Return(models.AssetRef{URL: "t1", Identifier: "projects/t1.webp"}, nil).Once()
		st.On("Store", mock.Anything, mock.Anything, "projects/images").
			Return(models.AssetRef{URL: "i1", Identifier: "projects/i1.webp"}, nil).Once()
		repo.On("UpdateProjectFields", ctx, id, mock.MatchedBy(func(u map[string]interface{}) bool {
			images := u["images"].(models.AssetRefs)
			thumb := u["thumbnail"].(models.AssetRef)
			return len(images) == 2 && thumb.Identifier == "projects/t1.webp"
		})).Return(&models.Project{ID: id}, nil).Once()
		st.On("Delete", mock.Anything, "projects/t0.webp").Return(nil).Once()

		_, err := svc.UpdateProject(ctx, id, dto.UpdateProjectInput{
			Files: []filestorage.File{webp(filestorage.FieldThumbnail), webp(filestorage.FieldImages)},
		})
		require.NoError(t, err)
		st.AssertExpectations(t)
		st.AssertNotCalled(t, "Delete", mock.Anything, "projects/i0.webp")
	})
}

func TestProjectService_GetAndDelete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("list", func(t *testing.T) {
		svc, repo, _ := newService()
		repo.On("GetProjects", ctx).Return([]models.Project{{ID: id}}, nil).Once()

		projects, err := svc.GetProjects(ctx)
		require.NoError(t, err)
		assert.Len(t, projects, 1)
	})

	t.Run("get missing", func(t *testing.T) {
		svc, repo, _ := newService()
		repo.On("GetProjectByID", ctx, id).Return(nil, storage.ErrNotFound).Once()

		_, err := svc.GetProjectByID(ctx, id)
		assert.EqualError(t, err, "Project not found")
	})

	t.Run("delete", func(t *testing.T) {
		svc, repo, st := newService()
		repo.On("GetProjectByID", ctx, id).Return(&models.Project{
			ID:        id,
			Thumbnail: models.AssetRef{URL: "t", Identifier: "projects/t.webp"},
		}, nil).Once()
		st.On("Delete", mock.Anything, "projects/t.webp").Return(nil).Once()
		repo.On("DeleteProject", ctx, id).Return(nil).Once()

		require.NoError(t, svc.DeleteProject(ctx, id))
		repo.AssertExpectations(t)
	})
}
