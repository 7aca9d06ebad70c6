package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "architylez/internal/app/http"
	"architylez/internal/config"
	"architylez/internal/lib/logger/sl"
	"architylez/internal/mailer"
	"architylez/internal/repository"
	blog "architylez/internal/services/blog_service"
	catalogue "architylez/internal/services/catalogue_service"
	contact "architylez/internal/services/contact_service"
	homemeta "architylez/internal/services/home_meta_service"
	product "architylez/internal/services/product_service"
	project "architylez/internal/services/project_service"
	stats "architylez/internal/services/stats_service"
	"architylez/internal/storage/filestorage"
	"architylez/internal/storage/postgresql"
	redisapp "architylez/internal/storage/redis"
	httprouters "architylez/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server

	log     *slog.Logger
	storage *postgresql.Storage
	redis   *redisapp.Client
}

// New открывает базу, применяет миграции и собирает сервисы.
// Redis необязателен: без адреса ограничение заявок выключено.
func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	storage, err := postgresql.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := storage.Migrate(ctx); err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("database ready")

	files, err := filestorage.New(ctx, log, cfg.Storage)
	if err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	repo := repository.NewRepository(storage.Pool())

	checks := map[string]httprouters.HealthChecker{
		"database": storage,
	}

	contactService := contact.NewContactService(log, repo.Contact, mailer.New(log, cfg.Mail))

	var redisClient *redisapp.Client
	if cfg.Redis.RedisAddr != "" {
		redisClient = redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
		if err := redisClient.HealthCheck(ctx); err != nil {
			log.Warn("redis is not reachable, rate limit will fail open", sl.Err(err))
		}

		contactService.WithRateLimit(repository.NewRedisRateLimitRepo(redisClient), contact.RateLimit{
			Limit:  cfg.Redis.ContactLimit,
			Window: cfg.Redis.ContactWindow,
		})
		checks["redis"] = redisClient
	}

	routers := httprouters.NewRouter(log, cfg.HTTP.BaseURL, httprouters.Services{
		Product:   product.NewProductService(log, repo.Product, files),
		Catalogue: catalogue.NewCatalogueService(log, repo.Catalogue, files),
		Blog:      blog.NewBlogService(log, repo.Blog, files),
		Project:   project.NewProjectService(log, repo.Project, files),
		Contact:   contactService,
		HomeMeta:  homemeta.NewHomeMetaService(log, repo.HomeMeta),
		Stats:     stats.NewStatsService(log, repo.Stats, cfg.StatsCacheTTL),
	}, checks)

	var uploadsDir string
	if local, ok := files.(*filestorage.LocalFileStorage); ok {
		uploadsDir = local.GetBaseDir()
	}

	server := httpapp.New(log, cfg.HTTP, uploadsDir, routers)
	server.BuildRouters()

	return &App{
		HTTPServer: server,
		log:        log,
		storage:    storage,
		redis:      redisClient,
	}, nil
}

// Stop останавливает HTTP-сервер и закрывает соединения.
func (a *App) Stop() {
	const op = "app.Stop"

	if err := a.HTTPServer.Stop(); err != nil {
		a.log.Error("http server stop", slog.String("op", op), sl.Err(err))
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("redis close", slog.String("op", op), sl.Err(err))
		}
	}

	a.storage.Stop()
}
