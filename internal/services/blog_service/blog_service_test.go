package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"architylez/internal/domain/models"
	"architylez/internal/lib/validate"
	"architylez/internal/storage"
	"architylez/internal/storage/filestorage"
	"architylez/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBlogRepository реализация мок-репозитория
type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) SaveBlog(ctx context.Context, blog models.Blog) (*models.Blog, error) {
	args := m.Called(ctx, blog)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *MockBlogRepository) GetBlogByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *MockBlogRepository) GetBlogs(ctx context.Context) ([]models.Blog, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Blog), args.Error(1)
}

func (m *MockBlogRepository) UpdateBlogFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Blog, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *MockBlogRepository) DeleteBlog(ctx context.Context, id uuid.UUID) error {
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

func png(field, name string) filestorage.File {
	return filestorage.File{Field: field, Filename: name, ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}
}

func TestBlogService_CreateBlog(t *testing.T) {
	ctx := context.Background()
	log := slog.Default()

	validInput := func() dto.CreateBlogInput {
		return dto.CreateBlogInput{
			Title:    "Tiles in 2026",
			Excerpt:  "Trends",
			Content:  json.RawMessage(`{"blocks":[{"type":"paragraph","text":"hi"}]}`),
			Category: "News",
			Author:   "Editor",
		}
	}

	t.Run("without files", func(t *testing.T) {
		repo := new(MockBlogRepository)
		st := new(MockFileStorage)
		service := NewBlogService(log, repo, st)

		id := uuid.New()
		repo.On("SaveBlog", ctx, mock.MatchedBy(func(b models.Blog) bool {
			return b.Thumbnail == nil && b.Images != nil && len(b.Images) == 0
		})).Return(&models.Blog{ID: id, Title: "Tiles in 2026"}, nil).Once()

		blog, err := service.CreateBlog(ctx, validInput())
		require.NoError(t, err)
		assert.Equal(t, id, blog.ID)
		st.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("with thumbnail and images", func(t *testing.T) {
		repo := new(MockBlogRepository)
		st := new(MockFileStorage)
		service := NewBlogService(log, repo, st)

		in := validInput()
		in.Files = []filestorage.File{
			png(filestorage.FieldThumbnail, "cover.png"),
			png(filestorage.FieldImages, "one.png"),
		}

		st.On("Store", mock.Anything, mock.Anything, folderThumbnails).
			Return(models.AssetRef{URL: "/uploads/blogs/c.png", Identifier: "blogs/c.png"}, nil).Once()
		st.On("Store", mock.Anything, mock.Anything, folderImages).
			Return(models.AssetRef{URL: "/uploads/blogs/1.png", Identifier: "blogs/1.png"}, nil).Once()
		repo.On("SaveBlog", ctx, mock.MatchedBy(func(b models.Blog) bool {
			return b.Thumbnail != nil && b.Thumbnail.Identifier == "blogs/c.png" && len(b.Images) == 1
		})).Return(&models.Blog{ID: uuid.New()}, nil).Once()

		_, err := service.CreateBlog(ctx, in)
		require.NoError(t, err)
		st.AssertExpectations(t)
	})

	tests := []struct {
		name   string
		mutate func(in *dto.CreateBlogInput)
		field  string
	}{
		{"empty title", func(in *dto.CreateBlogInput) { in.Title = "" }, "title"},
		{"empty content", func(in *dto.CreateBlogInput) { in.Content = nil }, "content"},
		{"empty author", func(in *dto.CreateBlogInput) { in.Author = "" }, "author"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockBlogRepository)
			service := NewBlogService(log, repo, new(MockFileStorage))

			in := validInput()
			tt.mutate(&in)

			_, err := service.CreateBlog(ctx, in)

			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, validate.MsgRequired, verr.Message)
			assert.Contains(t, verr.Fields, tt.field)
			repo.AssertNotCalled(t, "SaveBlog", mock.Anything, mock.Anything)
		})
	}

	t.Run("save failure removes uploads", func(t *testing.T) {
		repo := new(MockBlogRepository)
		st := new(MockFileStorage)
		service := NewBlogService(log, repo, st)

		in := validInput()
		in.Files = []filestorage.File{png(filestorage.FieldThumbnail, "cover.png")}

		st.On("Store", mock.Anything, mock.Anything, folderThumbnails).
			Return(models.AssetRef{URL: "u", Identifier: "blogs/c.png"}, nil).Once()
		repo.On("SaveBlog", ctx, mock.Anything).Return(nil, errors.New("connection reset")).Once()
		st.On("Delete", mock.Anything, "blogs/c.png").Return(nil).Once()

		_, err := service.CreateBlog(ctx, in)

		var perr *models.PersistenceError
		require.ErrorAs(t, err, &perr)
		st.AssertExpectations(t)
	})
}

func TestBlogService_UpdateBlog(t *testing.T) {
	ctx := context.Background()
	log := slog.Default()
	id := uuid.New()

	existing := func() *models.Blog {
		return &models.Blog{
			ID:        id,
			Title:     "Old",
			Thumbnail: &models.AssetRef{URL: "u0", Identifier: "blogs/old.png"},
			Images:    models.AssetRefs{{URL: "u1", Identifier: "blogs/1.png"}},
		}
	}

	t.Run("images are appended", func(t *testing.T) {
		repo := new(MockBlogRepository)
		st := new(MockFileStorage)
		service := NewBlogService(log, repo, st)

		repo.On("GetBlogByID", ctx, id).Return(existing(), nil).Once()
		st.On("Store", mock.Anything, mock.Anything, folderImages).
			Return(models.AssetRef{URL: "u2", Identifier: "blogs/2.png"}, nil).Once()
		repo.On("UpdateBlogFields", ctx, id, mock.MatchedBy(func(u map[string]interface{}) bool {
			images, ok := u["images"].(models.AssetRefs)
			return ok && len(images) == 2 &&
				images[0].Identifier == "blogs/1.png" &&
				images[1].Identifier == "blogs/2.png"
		})).Return(&models.Blog{ID: id}, nil).Once()

		_, err := service.UpdateBlog(ctx, id, dto.UpdateBlogInput{
			Files: []filestorage.File{png(filestorage.FieldImages, "two.png")},
		})
		require.NoError(t, err)
		st.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("thumbnail is replaced", func(t *testing.T) {
		repo := new(MockBlogRepository)
		st := new(MockFileStorage)
		service := NewBlogService(log, repo, st)

		repo.On("GetBlogByID", ctx, id).Return(existing(), nil).Once()
		st.On("Store", mock.Anything, mock.Anything, folderThumbnails).
			Return(models.AssetRef{URL: "u3", Identifier: "blogs/new.png"}, nil).Once()
		repo.On("UpdateBlogFields", ctx, id, mock.Anything).Return(&models.Blog{ID: id}, nil).Once()
		st.On("Delete", mock.Anything, "blogs/old.png").Return(nil).Once()

		_, err := service.UpdateBlog(ctx, id, dto.UpdateBlogInput{
			Files: []filestorage.File{png(filestorage.FieldThumbnail, "new.png")},
		})
		require.NoError(t, err)
		st.AssertExpectations(t)
	})

	t.Run("content and title", func(t *testing.T) {
		repo := new(MockBlogRepository)
		service := NewBlogService(log, repo, new(MockFileStorage))

		title := "New"
		content := json.RawMessage(`"plain text"`)
		repo.On("GetBlogByID", ctx, id).Return(existing(), nil).Once()
		repo.On("UpdateBlogFields", ctx, id, map[string]interface{}{"title": "New", "content": content}).
			Return(&models.Blog{ID: id, Title: "New"}, nil).Once()

		blog, err := service.UpdateBlog(ctx, id, dto.UpdateBlogInput{Title: &title, Content: content})
		require.NoError(t, err)
		assert.Equal(t, "New", blog.Title)
	})

	t.Run("nothing to update", func(t *testing.T) {
		repo := new(MockBlogRepository)
		service := NewBlogService(log, repo, new(MockFileStorage))

		repo.On("GetBlogByID", ctx, id).Return(existing(), nil).Once()

		blog, err := service.UpdateBlog(ctx, id, dto.UpdateBlogInput{})
		require.NoError(t, err)
		assert.Equal(t, "Old", blog.Title)
		repo.AssertNotCalled(t, "UpdateBlogFields", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockBlogRepository)
		service := NewBlogService(log, repo, new(MockFileStorage))

		repo.On("GetBlogByID", ctx, id).Return(nil, storage.ErrNotFound).Once()

		_, err := service.UpdateBlog(ctx, id, dto.UpdateBlogInput{})
		assert.True(t, models.IsNotFoundError(err))
		assert.EqualError(t, err, "Blog not found")
	})
}

func TestBlogService_DeleteBlog(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	repo := new(MockBlogRepository)
	st := new(MockFileStorage)
	service := NewBlogService(slog.Default(), repo, st)

	repo.On("GetBlogByID", ctx, id).Return(&models.Blog{
		ID:        id,
		Thumbnail: &models.AssetRef{URL: "u", Identifier: "blogs/t.png"},
		Images:    models.AssetRefs{{URL: "u", Identifier: "blogs/i.png"}},
	}, nil).Once()
	st.On("Delete", mock.Anything, "blogs/t.png").Return(nil).Once()
	st.On("Delete", mock.Anything, "blogs/i.png").Return(errors.New("gone")).Once()
	repo.On("DeleteBlog", ctx, id).Return(nil).Once()

	require.NoError(t, service.DeleteBlog(ctx, id))
	st.AssertExpectations(t)
	repo.AssertExpectations(t)
}
