package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"architylez/internal/domain/models"
	services "architylez/internal/services/catalogue_service"
	"architylez/internal/storage"
	"architylez/internal/storage/filestorage"
	"architylez/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCatalogueRepository struct {
	mock.Mock
}

func (m *MockCatalogueRepository) SaveCatalogue(ctx context.Context, catalogue models.Catalogue) (*models.Catalogue, error) {
	args := m.Called(ctx, catalogue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Catalogue), args.Error(1)
}

func (m *MockCatalogueRepository) GetCatalogueByID(ctx context.Context, id uuid.UUID) (*models.Catalogue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Catalogue), args.Error(1)
}

func (m *MockCatalogueRepository) GetCatalogues(ctx context.Context) ([]models.Catalogue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Catalogue), args.Error(1)
}

func (m *MockCatalogueRepository) UpdateCatalogueFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Catalogue, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Catalogue), args.Error(1)
}

func (m *MockCatalogueRepository) DeleteCatalogue(ctx context.Context, id uuid.UUID) error {
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

// MockObjectStorage умеет строить превью, как MinioFileStorage
type MockObjectStorage struct {
	MockFileStorage
}

func (m *MockObjectStorage) DerivePreview(ctx context.Context, identifier string) (string, error) {
	args := m.Called(ctx, identifier)
	return args.String(0), args.Error(1)
}

var pdfData = []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n")

func pdfFile() filestorage.File {
	return filestorage.File{Field: filestorage.FieldPDF, Filename: "catalogue.pdf", ContentType: "application/pdf", Data: pdfData}
}

func thumbFile() filestorage.File {
	return filestorage.File{Field: filestorage.FieldThumbnail, Filename: "cover.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff, 0xe0}}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCatalogueService_CreateCatalogue(t *testing.T) {
	ctx := context.Background()
	pdfRef := models.AssetRef{URL: "https://cdn/a/catalogues/pdf/x.pdf", Identifier: "catalogues/pdf/x.pdf"}

	t.Run("derived thumbnail and default category", func(t *testing.T) {
		repo := new(MockCatalogueRepository)
		st := new(MockObjectStorage)
		svc := services.NewCatalogueService(discardLogger(), repo, st)

		st.On("Store", mock.Anything, mock.Anything, "catalogues/pdf").Return(pdfRef, nil).Once()
		st.On("DerivePreview", mock.Anything, "catalogues/pdf/x.pdf").Return("https://cdn/a/catalogues/pdf/x.jpg?page=1", nil).Once()
		repo.On("SaveCatalogue", ctx, mock.MatchedBy(func(c models.Catalogue) bool {
			return c.Category == models.CategoryGeneral &&
				c.PDF == pdfRef &&
				c.Thumbnail != nil &&
				c.Thumbnail.URL == "https://cdn/a/catalogues/pdf/x.jpg?page=1" &&
				c.Thumbnail.Identifier == ""
		})).Return(&models.Catalogue{ID: uuid.New()}, nil).Once()

		_, err := svc.CreateCatalogue(ctx, dto.CreateCatalogueInput{
			Title:       "Spring",
			Description: "Collection",
			Files:       []filestorage.File{pdfFile()},
		})
		require.NoError(t, err)
		st.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("local storage leaves thumbnail empty", func(t *testing.T) {
		repo := new(MockCatalogueRepository)
		st := new(MockFileStorage)
		svc := services.NewCatalogueService(discardLogger(), repo, st)

		st.On("Store", mock.Anything, mock.Anything, "catalogues/pdf").Return(pdfRef, nil).Once()
		repo.On("SaveCatalogue", ctx, mock.MatchedBy(func(c models.Catalogue) bool {
			return c.Thumbnail == nil && c.Category == "Wood"
		})).Return(&models.Catalogue{ID: uuid.New()}, nil).Once()

		_, err := svc.CreateCatalogue(ctx, dto.CreateCatalogueInput{
			Title:       "Wood",
			Description: "Collection",
			Category:    "Wood",
			Files:       []filestorage.File{pdfFile()},
		})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("uploaded thumbnail wins over preview", func(t *testing.T) {
		repo := new(MockCatalogueRepository)
		st := new(MockObjectStorage)
		svc := services.NewCatalogueService(discardLogger(), repo, st)

		thumbRef := models.AssetRef{URL: "https://cdn/a/catalogues/thumbnails/c.jpg", Identifier: "catalogues/thumbnails/c.jpg"}
		st.On("Store", mock.Anything, mock.Anything, "catalogues/pdf").Return(pdfRef, nil).Once()
		st.On("Store", mock.Anything, mock.Anything, "catalogues/thumbnails").Return(thumbRef, nil).Once()
		repo.On("SaveCatalogue", ctx, mock.MatchedBy(func(c models.Catalogue) bool {
			return c.Thumbnail != nil && *c.Thumbnail == thumbRef
		})).Return(&models.Catalogue{ID: uuid.New()}, nil).Once()

		_, err := svc.CreateCatalogue(ctx, dto.CreateCatalogueInput{
			Title:       "Spring",
			Description: "Collection",
			Files:       []filestorage.File{pdfFile(), thumbFile()},
		})
		require.NoError(t, err)
		st.AssertNotCalled(t, "DerivePreview", mock.Anything, mock.Anything)
	})

	t.Run("pdf is required", func(t *testing.T) {
		repo := new(MockCatalogueRepository)
		st := new(MockFileStorage)
		svc := services.NewCatalogueService(discardLogger(), repo, st)

		_, err := svc.CreateCatalogue(ctx, dto.CreateCatalogueInput{Title: "a", Description: "b"})

		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, services.MsgPDFRequired, verr.Message)
	})

	t.Run("image in pdf slot is rejected", func(t *testing.T) {
		repo := new(MockCatalogueRepository)
		st := new(MockFileStorage)
		svc := services.NewCatalogueService(discardLogger(), repo, st)

		bad := thumbFile()
		bad.Field = filestorage.FieldPDF

		_, err := svc.CreateCatalogue(ctx, dto.CreateCatalogueInput{Title: "a", Description: "b", Files: []filestorage.File{bad}})

		var merr *models.UnsupportedMediaError
		require.ErrorAs(t, err, &merr)
		st.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("insert failure removes pdf", func(t *testing.T) {
		repo := new(MockCatalogueRepository)
		st := new(MockFileStorage)
		svc := services.NewCatalogueService(discardLogger(), repo, st)

		st.On("Store", mock.Anything, mock.Anything, "catalogues/pdf").Return(pdfRef, nil).Once()
		repo.On("SaveCatalogue", ctx, mock.Anything).Return(nil, errors.New("db down")).Once()
		st.On("Delete", mock.Anything, "catalogues/pdf/x.pdf").Return(nil).Once()

		_, err := svc.CreateCatalogue(ctx, dto.CreateCatalogueInput{
			Title:       "a",
			Description: "b",
			Files:       []filestorage.File{pdfFile()},
		})

		var perr *models.PersistenceError
		require.ErrorAs(t, err, &perr)
		st.AssertExpectations(t)
	})
}

func TestCatalogueService_UpdateCatalogue(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	oldPDF := models.AssetRef{URL: "https://cdn/a/old.pdf", Identifier: "catalogues/pdf/old.pdf"}
	newPDF := models.AssetRef{URL: "https://cdn/a/new.pdf", Identifier: "catalogues/pdf/new.pdf"}

	t.Run("new pdf re-derives preview", func(t *testing.T) {
		repo := new(MockCatalogueRepository)
		st := new(MockObjectStorage)
		svc := services.NewCatalogueService(discardLogger(), repo, st)

		repo.On("GetCatalogueByID", ctx, id).Return(&models.Catalogue{
			ID:        id,
			PDF:       oldPDF,
			Thumbnail: &models.AssetRef{URL: "https://cdn/a/old.jpg?page=1"},
		}, nil).Once()
		st.On("Store", mock.Anything, mock.Anything, "catalogues/pdf").Return(newPDF, nil).Once()
		st.On("DerivePreview", mock.Anything, "catalogues/pdf/new.pdf").Return("https://cdn/a/new.jpg?page=1", nil).Once()
		repo.On("UpdateCatalogueFields", ctx, id, mock.MatchedBy(func(u map[string]interface{}) bool {
			thumb, ok := u["thumbnail"].(*models.AssetRef)
			return ok && thumb.URL == "https://cdn/a/new.jpg?page=1" && u["pdf"] == newPDF
		})).Return(&models.Catalogue{ID: id}, nil).Once()
		st.On("Delete", mock.Anything, "catalogues/pdf/old.pdf").Return(nil).Once()

		_, err := svc.UpdateCatalogue(ctx, id, dto.UpdateCatalogueInput{Files: []filestorage.File{pdfFile()}})
		require.NoError(t, err)
		st.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("uploaded thumbnail survives new pdf", func(t *testing.T) {
		repo := new(MockCatalogueRepository)
		st := new(MockObjectStorage)
		svc := services.NewCatalogueService(discardLogger(), repo, st)

		repo.On("GetCatalogueByID", ctx, id).Return(&models.Catalogue{
			ID:        id,
			PDF:       oldPDF,
			Thumbnail: &models.AssetRef{URL: "https://cdn/a/cover.jpg", Identifier: "catalogues/thumbnails/cover.jpg"},
		}, nil).Once()
		st.On("Store", mock.Anything, mock.Anything, "catalogues/pdf").Return(newPDF, nil).Once()
		repo.On("UpdateCatalogueFields", ctx, id, mock.MatchedBy(func(u map[string]interface{}) bool {
			_, has := u["thumbnail"]
			return !has
		})).Return(&models.Catalogue{ID: id}, nil).Once()
		st.On("Delete", mock.Anything, "catalogues/pdf/old.pdf").Return(nil).Once()

		_, err := svc.UpdateCatalogue(ctx, id, dto.UpdateCatalogueInput{Files: []filestorage.File{pdfFile()}})
		require.NoError(t, err)
		st.AssertNotCalled(t, "DerivePreview", mock.Anything, mock.Anything)
		st.AssertNotCalled(t, "Delete", mock.Anything, "catalogues/thumbnails/cover.jpg")
	})

	t.Run("text fields only", func(t *testing.T) {
		repo := new(MockCatalogueRepository)
		st := new(MockFileStorage)
		svc := services.NewCatalogueService(discardLogger(), repo, st)

		title := "Renamed"
		category := "Subway"
		repo.On("GetCatalogueByID", ctx, id).Return(&models.Catalogue{ID: id, PDF: oldPDF}, nil).Once()
		repo.On("UpdateCatalogueFields", ctx, id, map[string]interface{}{"title": "Renamed", "category": "Subway"}).
			Return(&models.Catalogue{ID: id, Title: title}, nil).Once()

		updated, err := svc.UpdateCatalogue(ctx, id, dto.UpdateCatalogueInput{Title: &title, Category: &category})
		require.NoError(t, err)
		assert.Equal(t, title, updated.Title)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockCatalogueRepository)
		svc := services.NewCatalogueService(discardLogger(), repo, new(MockFileStorage))

		repo.On("GetCatalogueByID", ctx, id).Return(nil, storage.ErrNotFound).Once()

		_, err := svc.UpdateCatalogue(ctx, id, dto.UpdateCatalogueInput{})
		assert.EqualError(t, err, "Catalogue not found")
	})
}

func TestCatalogueService_DeleteCatalogue(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	repo := new(MockCatalogueRepository)
	st := new(MockFileStorage)
	svc := services.NewCatalogueService(discardLogger(), repo, st)

	repo.On("GetCatalogueByID", ctx, id).Return(&models.Catalogue{
		ID:        id,
		PDF:       models.AssetRef{URL: "u", Identifier: "catalogues/pdf/a.pdf"},
		Thumbnail: &models.AssetRef{URL: "https://cdn/a.jpg?page=1"},
	}, nil).Once()
	st.On("Delete", mock.Anything, "catalogues/pdf/a.pdf").Return(nil).Once()
	repo.On("DeleteCatalogue", ctx, id).Return(nil).Once()

	require.NoError(t, svc.DeleteCatalogue(ctx, id))
	st.AssertExpectations(t)
	repo.AssertExpectations(t)
}
