package http

import (
	"log/slog"
	"net/http"

	"architylez/internal/lib/logger/sl"
	"architylez/internal/transport/http/dto"
	"architylez/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

const entityProject = "Project"

// CreateProject godoc
// @Summary Создание проекта
// @Tags Projects
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Название"
// @Param category formData string true "Категория"
// @Param description formData string false "Описание"
// @Param thumbnail formData file true "Обложка"
// @Param images formData file false "Изображения"
// @Success 201 {object} response.Response{data=models.Project}
// @Failure 400 {object} response.ErrorResponse "Не заполнены поля или неверный файл"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/projects/create [post]
func (r *Routers) CreateProject(c echo.Context) error {
	const op = "http.routers.CreateProject"
	log := r.log.With(slog.String("op", op))

	fields, err := parseRequest(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	var in dto.CreateProjectInput
	if err := c.Bind(&in); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return r.fail(c, log, errInvalidBody)
	}
	trimSpace(&in)
	in.Files = fields.files

	if err := c.Validate(in); err != nil {
		return r.fail(c, log, err)
	}

	project, err := r.ProjectService.CreateProject(c.Request().Context(), in)
	if err != nil {
		return r.fail(c, log, err)
	}

	r.resolveURLs(c, project)
	return c.JSON(http.StatusCreated, response.Success("Project created successfully", project))
}

// GetProjects godoc
// @Summary Список проектов
// @Tags Projects
// @Produce json
// @Success 200 {array} models.Project
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/projects [get]
func (r *Routers) GetProjects(c echo.Context) error {
	const op = "http.routers.GetProjects"
	log := r.log.With(slog.String("op", op))

	projects, err := r.ProjectService.GetProjects(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err)
	}

	r.resolveURLs(c, projects)
	return c.JSON(http.StatusOK, projects)
}

// GetProjectByID godoc
// @Summary Проект по id
// @Tags Projects
// @Produce json
// @Param id path string true "UUID проекта" format(uuid)
// @Success 200 {object} models.Project
// @Failure 404 {object} response.ErrorResponse "Проект не найден"
// @Router /api/projects/{id} [get]
func (r *Routers) GetProjectByID(c echo.Context) error {
	const op = "http.routers.GetProjectByID"
	log := r.log.With(slog.String("op", op))

	id, err := parseID(c, entityProject)
	if err != nil {
		return r.fail(c, log, err)
	}

	project, err := r.ProjectService.GetProjectByID(c.Request().Context(), id)
	if err != nil {
		return r.fail(c, log, err)
	}

	r.resolveURLs(c, project)
	return c.JSON(http.StatusOK, project)
}

// UpdateProject godoc
// @Summary Обновление проекта
// @Description description можно очистить пустой строкой. Новые изображения добавляются к существующим.
// @Tags Projects
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "UUID проекта" format(uuid)
// @Param thumbnail formData file false "Новая обложка"
// @Param images formData file false "Дополнительные изображения"
// @Success 200 {object} response.Response{data=models.Project}
// @Failure 400 {object} response.ErrorResponse "Неверные данные"
// @Failure 404 {object} response.ErrorResponse "Проект не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/projects/{id} [put]
func (r *Routers) UpdateProject(c echo.Context) error {
	const op = "http.routers.UpdateProject"
	log := r.log.With(slog.String("op", op))

	id, err := parseID(c, entityProject)
	if err != nil {
		return r.fail(c, log, err)
	}

	fields, err := parseRequest(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	var in dto.UpdateProjectInput
	if err := c.Bind(&in); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return r.fail(c, log, errInvalidBody)
	}
	trimSpace(&in)
	in.Files = fields.files

	if err := c.Validate(in); err != nil {
		return r.fail(c, log, err)
	}

	project, err := r.ProjectService.UpdateProject(c.Request().Context(), id, in)
	if err != nil {
		return r.fail(c, log, err)
	}

	r.resolveURLs(c, project)
	return c.JSON(http.StatusOK, response.Success("Project updated successfully", project))
}

// DeleteProject godoc
// @Summary Удаление проекта
// @Tags Projects
// @Produce json
// @Param id path string true "UUID проекта" format(uuid)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Проект не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/projects/{id} [delete]
func (r *Routers) DeleteProject(c echo.Context) error {
	const op = "http.routers.DeleteProject"
	log := r.log.With(slog.String("op", op))

	id, err := parseID(c, entityProject)
	if err != nil {
		return r.fail(c, log, err)
	}

	if err := r.ProjectService.DeleteProject(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.Success("Project deleted successfully", nil))
}
