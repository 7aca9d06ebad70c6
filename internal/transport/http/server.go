package http

import (
	"context"
	"log/slog"

	"architylez/internal/domain/models"
	"architylez/internal/transport/http/dto"

	"github.com/google/uuid"

	_ "architylez/docs"
)

type ProductService interface {
	CreateProduct(ctx context.Context, in dto.CreateProductInput) (*models.Product, error)
	GetProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, in dto.UpdateProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type CatalogueService interface {
	CreateCatalogue(ctx context.Context, in dto.CreateCatalogueInput) (*models.Catalogue, error)
	GetCatalogues(ctx context.Context) ([]models.Catalogue, error)
	GetCatalogueByID(ctx context.Context, id uuid.UUID) (*models.Catalogue, error)
	UpdateCatalogue(ctx context.Context, id uuid.UUID, in dto.UpdateCatalogueInput) (*models.Catalogue, error)
	DeleteCatalogue(ctx context.Context, id uuid.UUID) error
}

type BlogService interface {
	CreateBlog(ctx context.Context, in dto.CreateBlogInput) (*models.Blog, error)
	GetBlogs(ctx context.Context) ([]models.Blog, error)
	GetBlogByID(ctx context.Context, id uuid.UUID) (*models.Blog, error)
	UpdateBlog(ctx context.Context, id uuid.UUID, in dto.UpdateBlogInput) (*models.Blog, error)
	DeleteBlog(ctx context.Context, id uuid.UUID) error
}

type ProjectService interface {
	CreateProject(ctx context.Context, in dto.CreateProjectInput) (*models.Project, error)
	GetProjects(ctx context.Context) ([]models.Project, error)
	GetProjectByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, in dto.UpdateProjectInput) (*models.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
}

type ContactService interface {
	SubmitContact(ctx context.Context, in dto.ContactFormInput, clientIP string) (*models.ContactForm, error)
	GetContacts(ctx context.Context) ([]models.ContactForm, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error
}

type HomeMetaService interface {
	GetHomeMeta(ctx context.Context) (*models.HomeMeta, error)
	CreateHomeMeta(ctx context.Context, in dto.HomeMetaInput) (*models.HomeMeta, error)
	UpsertHomeMeta(ctx context.Context, in dto.UpdateHomeMetaInput) (*models.HomeMeta, error)
	DeleteHomeMeta(ctx context.Context) error
}

type StatsService interface {
	GetStats(ctx context.Context) (models.Stats, error)
	Invalidate()
}

// HealthChecker отвечает за одну зависимость в /health.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Services набор сервисов, которые обслуживают маршруты.
type Services struct {
	Product   ProductService
	Catalogue CatalogueService
	Blog      BlogService
	Project   ProjectService
	Contact   ContactService
	HomeMeta  HomeMetaService
	Stats     StatsService
}

type Routers struct {
	log     *slog.Logger
	baseURL string
	checks  map[string]HealthChecker

	ProductService   ProductService
	CatalogueService CatalogueService
	BlogService      BlogService
	ProjectService   ProjectService
	ContactService   ContactService
	HomeMetaService  HomeMetaService
	StatsService     StatsService
}

// NewRouter собирает обработчики. baseURL переопределяет хост в ссылках на
// локальные файлы; checks попадают в /health, "database" обязателен для 200.
func NewRouter(log *slog.Logger, baseURL string, services Services, checks map[string]HealthChecker) *Routers {
	return &Routers{
		log:              log,
		baseURL:          baseURL,
		checks:           checks,
		ProductService:   services.Product,
		CatalogueService: services.Catalogue,
		BlogService:      services.Blog,
		ProjectService:   services.Project,
		ContactService:   services.Contact,
		HomeMetaService:  services.HomeMeta,
		StatsService:     services.Stats,
	}
}

// statsChanged сбрасывает кэш счетчиков после create/delete.
func (r *Routers) statsChanged() {
	if r.StatsService != nil {
		r.StatsService.Invalidate()
	}
}
