package http

import (
	"log/slog"
	"net/http"

	"architylez/internal/lib/logger/sl"
	"architylez/internal/transport/http/dto"
	"architylez/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// GetHomeMeta godoc
// @Summary Мета-данные главной страницы
// @Description Возвращает null, если мета еще не создана.
// @Tags HomeMeta
// @Produce json
// @Success 200 {object} models.HomeMeta
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/home-meta [get]
func (r *Routers) GetHomeMeta(c echo.Context) error {
	const op = "http.routers.GetHomeMeta"
	log := r.log.With(slog.String("op", op))

	meta, err := r.HomeMetaService.GetHomeMeta(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err)
	}

	if meta == nil {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, meta)
}

// CreateHomeMeta godoc
// @Summary Создание мета-данных главной
// @Tags HomeMeta
// @Accept json
// @Produce json
// @Param input body dto.HomeMetaInput true "Мета"
// @Success 201 {object} models.HomeMeta
// @Failure 400 {object} response.ErrorResponse "Мета уже существует или не заполнены поля"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/home-meta [post]
func (r *Routers) CreateHomeMeta(c echo.Context) error {
	const op = "http.routers.CreateHomeMeta"
	log := r.log.With(slog.String("op", op))

	var in dto.HomeMetaInput
	if err := c.Bind(&in); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return r.fail(c, log, errInvalidBody)
	}
	trimSpace(&in)

	if err := c.Validate(in); err != nil {
		return r.fail(c, log, err)
	}

	meta, err := r.HomeMetaService.CreateHomeMeta(c.Request().Context(), in)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, meta)
}

// UpsertHomeMeta godoc
// @Summary Обновление мета-данных главной
// @Description Создает мету, если ее нет.
// @Tags HomeMeta
// @Accept json
// @Produce json
// @Param input body dto.UpdateHomeMetaInput true "Поля для обновления"
// @Success 200 {object} models.HomeMeta
// @Failure 400 {object} response.ErrorResponse "Не заполнены поля"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/home-meta [put]
func (r *Routers) UpsertHomeMeta(c echo.Context) error {
	const op = "http.routers.UpsertHomeMeta"
	log := r.log.With(slog.String("op", op))

	var in dto.UpdateHomeMetaInput
	if err := c.Bind(&in); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return r.fail(c, log, errInvalidBody)
	}
	trimSpace(&in)

	if err := c.Validate(in); err != nil {
		return r.fail(c, log, err)
	}

	meta, err := r.HomeMetaService.UpsertHomeMeta(c.Request().Context(), in)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, meta)
}

// DeleteHomeMeta godoc
// @Summary Удаление мета-данных главной
// @Tags HomeMeta
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Мета не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/home-meta [delete]
func (r *Routers) DeleteHomeMeta(c echo.Context) error {
	const op = "http.routers.DeleteHomeMeta"
	log := r.log.With(slog.String("op", op))

	if err := r.HomeMetaService.DeleteHomeMeta(c.Request().Context()); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.Success("Meta deleted successfully", nil))
}
