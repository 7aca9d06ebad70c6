package http

import (
	"log/slog"
	"net/http"

	"architylez/internal/lib/logger/sl"
	"architylez/internal/transport/http/dto"
	"architylez/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

const entityCatalogue = "Catalogue"

// CreateCatalogue godoc
// @Summary Создание каталога
// @Description PDF обязателен. Без thumbnail обложка строится по первой странице PDF, если хранилище это умеет.
// @Tags Catalogues
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Название"
// @Param description formData string true "Описание"
// @Param category formData string false "Категория (по умолчанию General)" Enums(GVT, Subway, Wall, Wood, General)
// @Param pdf formData file true "PDF каталога"
// @Param thumbnail formData file false "Обложка"
// @Success 201 {object} response.Response{data=models.Catalogue}
// @Failure 400 {object} response.ErrorResponse "Не заполнены поля или неверный файл"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/catalogues/create [post]
func (r *Routers) CreateCatalogue(c echo.Context) error {
	const op = "http.routers.CreateCatalogue"
	log := r.log.With(slog.String("op", op))

	fields, err := parseRequest(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	var in dto.CreateCatalogueInput
	if err := c.Bind(&in); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return r.fail(c, log, errInvalidBody)
	}
	trimSpace(&in)
	in.Files = fields.files

	if err := c.Validate(in); err != nil {
		return r.fail(c, log, err)
	}

	catalogue, err := r.CatalogueService.CreateCatalogue(c.Request().Context(), in)
	if err != nil {
		return r.fail(c, log, err)
	}
	r.statsChanged()

	r.resolveURLs(c, catalogue)
	return c.JSON(http.StatusCreated, response.Success("Catalogue created successfully", catalogue))
}

// GetCatalogues godoc
// @Summary Список каталогов
// @Tags Catalogues
// @Produce json
// @Success 200 {array} models.Catalogue
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/catalogues [get]
func (r *Routers) GetCatalogues(c echo.Context) error {
	const op = "http.routers.GetCatalogues"
	log := r.log.With(slog.String("op", op))

	catalogues, err := r.CatalogueService.GetCatalogues(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err)
	}

	r.resolveURLs(c, catalogues)
	return c.JSON(http.StatusOK, catalogues)
}

// GetCatalogueByID godoc
// @Summary Каталог по id
// @Tags Catalogues
// @Produce json
// @Param id path string true "UUID каталога" format(uuid)
// @Success 200 {object} models.Catalogue
// @Failure 404 {object} response.ErrorResponse "Каталог не найден"
// @Router /api/catalogues/{id} [get]
func (r *Routers) GetCatalogueByID(c echo.Context) error {
	const op = "http.routers.GetCatalogueByID"
	log := r.log.With(slog.String("op", op))

	id, err := parseID(c, entityCatalogue)
	if err != nil {
		return r.fail(c, log, err)
	}

	catalogue, err := r.CatalogueService.GetCatalogueByID(c.Request().Context(), id)
	if err != nil {
		return r.fail(c, log, err)
	}

	r.resolveURLs(c, catalogue)
	return c.JSON(http.StatusOK, catalogue)
}

// UpdateCatalogue godoc
// @Summary Обновление каталога
// @Tags Catalogues
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "UUID каталога" format(uuid)
// @Param pdf formData file false "Новый PDF"
// @Param thumbnail formData file false "Новая обложка"
// @Success 200 {object} response.Response{data=models.Catalogue}
// @Failure 400 {object} response.ErrorResponse "Неверные данные"
// @Failure 404 {object} response.ErrorResponse "Каталог не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/catalogues/{id} [put]
func (r *Routers) UpdateCatalogue(c echo.Context) error {
	const op = "http.routers.UpdateCatalogue"
	log := r.log.With(slog.String("op", op))

	id, err := parseID(c, entityCatalogue)
	if err != nil {
		return r.fail(c, log, err)
	}

	fields, err := parseRequest(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	var in dto.UpdateCatalogueInput
	if err := c.Bind(&in); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return r.fail(c, log, errInvalidBody)
	}
	trimSpace(&in)
	in.Files = fields.files

	if err := c.Validate(in); err != nil {
		return r.fail(c, log, err)
	}

	catalogue, err := r.CatalogueService.UpdateCatalogue(c.Request().Context(), id, in)
	if err != nil {
		return r.fail(c, log, err)
	}

	r.resolveURLs(c, catalogue)
	return c.JSON(http.StatusOK, response.Success("Catalogue updated successfully", catalogue))
}

// DeleteCatalogue godoc
// @Summary Удаление каталога
// @Tags Catalogues
// @Produce json
// @Param id path string true "UUID каталога" format(uuid)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Каталог не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/catalogues/{id} [delete]
func (r *Routers) DeleteCatalogue(c echo.Context) error {
	const op = "http.routers.DeleteCatalogue"
	log := r.log.With(slog.String("op", op))

	id, err := parseID(c, entityCatalogue)
	if err != nil {
		return r.fail(c, log, err)
	}

	if err := r.CatalogueService.DeleteCatalogue(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}
	r.statsChanged()

	return c.JSON(http.StatusOK, response.Success("Catalogue deleted successfully", nil))
}
