package http

import (
	"log/slog"
	"net/http"

	"architylez/internal/lib/logger/sl"
	"architylez/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// GetStats godoc
// @Summary Счетчики для админки
// @Tags Admin
// @Produce json
// @Success 200 {object} models.Stats
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/admin/stats [get]
func (r *Routers) GetStats(c echo.Context) error {
	const op = "http.routers.GetStats"
	log := r.log.With(slog.String("op", op))

	stats, err := r.StatsService.GetStats(c.Request().Context())
	if err != nil {
		log.Error("failed to fetch stats", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrStats)
	}

	return c.JSON(http.StatusOK, stats)
}
