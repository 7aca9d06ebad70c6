package repository

import (
	"context"
	"time"

	"architylez/internal/domain/models"

	"github.com/google/uuid"
)

type ProductRepository interface {
	SaveProduct(ctx context.Context, product models.Product) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	UpdateProductFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type CatalogueRepository interface {
	SaveCatalogue(ctx context.Context, catalogue models.Catalogue) (*models.Catalogue, error)
	GetCatalogueByID(ctx context.Context, id uuid.UUID) (*models.Catalogue, error)
	GetCatalogues(ctx context.Context) ([]models.Catalogue, error)
	UpdateCatalogueFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Catalogue, error)
	DeleteCatalogue(ctx context.Context, id uuid.UUID) error
}

type BlogRepository interface {
	SaveBlog(ctx context.Context, blog models.Blog) (*models.Blog, error)
	GetBlogByID(ctx context.Context, id uuid.UUID) (*models.Blog, error)
	GetBlogs(ctx context.Context) ([]models.Blog, error)
	UpdateBlogFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Blog, error)
	DeleteBlog(ctx context.Context, id uuid.UUID) error
}

type ProjectRepository interface {
	SaveProject(ctx context.Context, project models.Project) (*models.Project, error)
	GetProjectByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	GetProjects(ctx context.Context) ([]models.Project, error)
	UpdateProjectFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
}

type ContactRepository interface {
	SaveContact(ctx context.Context, contact models.ContactForm) (*models.ContactForm, error)
	GetContacts(ctx context.Context) ([]models.ContactForm, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error
}

type HomeMetaRepository interface {
	GetHomeMeta(ctx context.Context) (*models.HomeMeta, error)
	SaveHomeMeta(ctx context.Context, meta models.HomeMeta) (*models.HomeMeta, error)
	UpdateHomeMetaFields(ctx context.Context, updates map[string]interface{}) (*models.HomeMeta, error)
	DeleteHomeMeta(ctx context.Context) error
}

type StatsRepository interface {
	GetStats(ctx context.Context) (models.Stats, error)
}

type RateLimitRepository interface {
	Hit(ctx context.Context, scope, subject string, window time.Duration) (int64, error)
	Reset(ctx context.Context, scope, subject string) error
}
