package http

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"architylez/internal/lib/logger/sl"

	"github.com/labstack/echo/v4"
)

const (
	checkTimeout = 2 * time.Second

	// без базы сервис не готов; остальные проверки только понижают статус
	criticalCheck = "database"
)

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Root godoc
// @Summary Проверка, что API поднято
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Router / [get]
func (r *Routers) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "API is running 🚀"})
}

// Health godoc
// @Summary Состояние зависимостей
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	const op = "http.routers.Health"
	log := r.log.With(slog.String("op", op))

	names := make([]string, 0, len(r.checks))
	for name := range r.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := HealthResponse{Status: "ok", Checks: make(map[string]string, len(names))}
	code := http.StatusOK

	for _, name := range names {
		ctx, cancel := context.WithTimeout(c.Request().Context(), checkTimeout)
		err := r.checks[name].HealthCheck(ctx)
		cancel()

		if err == nil {
			resp.Checks[name] = "ok"
			continue
		}

		log.Warn("health check failed", slog.String("check", name), sl.Err(err))
		resp.Checks[name] = "down"
		if name == criticalCheck {
			resp.Status = "down"
			code = http.StatusServiceUnavailable
		} else if resp.Status == "ok" {
			resp.Status = "degraded"
		}
	}

	return c.JSON(code, resp)
}
