package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"architylez/internal/config"
	"architylez/internal/lib/validate"
	appmiddleware "architylez/internal/middleware"
	"architylez/internal/storage/filestorage"
	httprouters "architylez/internal/transport/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const (
	defaultBodyLimit = "60M"
	shutdownTimeout  = 10 * time.Second
)

// CustomValidator отдает ошибки в виде *models.ValidationError. Входные
// данные со своим методом Validate проверяются им.
type CustomValidator struct{}

func (cv *CustomValidator) Validate(i interface{}) error {
	if v, ok := i.(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return validate.Struct(i)
}

type Server struct {
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	host    string
	port    string
	uploads string
}

// New настраивает echo. uploadsDir не пустой, только когда файлы лежат на диске
// и их нужно раздавать по /uploads.
func New(log *slog.Logger, cfg config.HTTPConfig, uploadsDir string, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Timeout
	e.Server.WriteTimeout = cfg.Timeout

	e.Validator = &CustomValidator{}

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc:  allowOrigin(cfg.AllowedOrigins),
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))
	bodyLimit := cfg.BodyLimit
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}
	e.Use(middleware.BodyLimit(bodyLimit))
	e.Use(appmiddleware.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	return &Server{
		log:     log,
		e:       e,
		routers: routers,
		host:    cfg.Host,
		port:    cfg.Port,
		uploads: uploadsDir,
	}
}

// allowOrigin пропускает запросы без Origin (curl, сервер-сервер) и origin из списка.
func allowOrigin(allowed []string) func(origin string) (bool, error) {
	return func(origin string) (bool, error) {
		if origin == "" {
			return true, nil
		}
		return slices.Contains(allowed, origin), nil
	}
}

// Handler отдает собранный роутер, используется в тестах.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"), slog.String("port", s.port))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(fmt.Sprintf("%s:%s", s.host, s.port)); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.log.Info("stopping", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) BuildRouters() {
	s.e.GET("/", s.routers.Root)
	s.e.GET("/health", s.routers.Health)
	s.e.GET("/metrics", echoprometheus.NewHandler())
	s.e.GET("/swagger/*", echoSwagger.WrapHandler)

	if s.uploads != "" {
		s.e.Static(filestorage.URLPrefix, s.uploads)
	}

	api := s.e.Group("/api")
	{
		products := api.Group("/products")
		{
			products.POST("", s.routers.CreateProduct)
			products.GET("", s.routers.GetProducts)
			products.GET("/:id", s.routers.GetProductByID)
			products.PUT("/:id", s.routers.UpdateProduct)
			products.DELETE("/:id", s.routers.DeleteProduct)
		}

		catalogues := api.Group("/catalogues")
		{
			catalogues.POST("/create", s.routers.CreateCatalogue)
			catalogues.GET("", s.routers.GetCatalogues)
			catalogues.GET("/:id", s.routers.GetCatalogueByID)
			catalogues.PUT("/:id", s.routers.UpdateCatalogue)
			catalogues.DELETE("/:id", s.routers.DeleteCatalogue)
		}

		blogs := api.Group("/blogs")
		{
			blogs.POST("/create", s.routers.CreateBlog)
			blogs.GET("", s.routers.GetBlogs)
			blogs.GET("/:id", s.routers.GetBlogByID)
			blogs.PUT("/:id", s.routers.UpdateBlog)
			blogs.DELETE("/:id", s.routers.DeleteBlog)
		}

		projects := api.Group("/projects")
		{
			projects.POST("/create", s.routers.CreateProject)
			projects.GET("", s.routers.GetProjects)
			projects.GET("/:id", s.routers.GetProjectByID)
			projects.PUT("/:id", s.routers.UpdateProject)
			projects.DELETE("/:id", s.routers.DeleteProject)
		}

		contacts := api.Group("/contact-forms")
		{
			contacts.POST("", s.routers.SubmitContact)
			contacts.GET("", s.routers.GetContacts)
			contacts.DELETE("/:id", s.routers.DeleteContact)
		}

		meta := api.Group("/home-meta")
		{
			meta.GET("", s.routers.GetHomeMeta)
			meta.POST("", s.routers.CreateHomeMeta)
			meta.PUT("", s.routers.UpsertHomeMeta)
			meta.DELETE("", s.routers.DeleteHomeMeta)
		}

		api.GET("/admin/stats", s.routers.GetStats)
	}
}
