package http

import (
	"log/slog"
	"net/http"

	"architylez/internal/lib/logger/sl"
	"architylez/internal/transport/http/dto"
	"architylez/internal/transport/http/dto/request"
	"architylez/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

const entityBlog = "Blog"

// CreateBlog godoc
// @Summary Создание поста
// @Description content принимается как JSON-документ редактора или как строка.
// @Tags Blogs
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Заголовок"
// @Param excerpt formData string true "Анонс"
// @Param content formData string true "Содержимое"
// @Param category formData string true "Категория"
// @Param author formData string true "Автор"
// @Param thumbnail formData file false "Обложка"
// @Param images formData file false "Изображения"
// @Success 201 {object} response.Response{data=models.Blog}
// @Failure 400 {object} response.ErrorResponse "Не заполнены поля или неверный файл"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/blogs/create [post]
func (r *Routers) CreateBlog(c echo.Context) error {
	const op = "http.routers.CreateBlog"
	log := r.log.With(slog.String("op", op))

	fields, err := parseRequest(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	var req request.BlogRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return r.fail(c, log, errInvalidBody)
	}
	trimSpace(&req)

	in := dto.CreateBlogInput{
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Content:  fields.content("content"),
		Category: req.Category,
		Author:   req.Author,
		Files:    fields.files,
	}
	if err := c.Validate(in); err != nil {
		return r.fail(c, log, err)
	}

	blog, err := r.BlogService.CreateBlog(c.Request().Context(), in)
	if err != nil {
		return r.fail(c, log, err)
	}
	r.statsChanged()

	r.resolveURLs(c, blog)
	return c.JSON(http.StatusCreated, response.Success("Blog created successfully", blog))
}

// GetBlogs godoc
// @Summary Список постов
// @Tags Blogs
// @Produce json
// @Success 200 {array} models.Blog
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/blogs [get]
func (r *Routers) GetBlogs(c echo.Context) error {
	const op = "http.routers.GetBlogs"
	log := r.log.With(slog.String("op", op))

	blogs, err := r.BlogService.GetBlogs(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err)
	}

	r.resolveURLs(c, blogs)
	return c.JSON(http.StatusOK, blogs)
}

// GetBlogByID godoc
// @Summary Пост по id
// @Tags Blogs
// @Produce json
// @Param id path string true "UUID поста" format(uuid)
// @Success 200 {object} models.Blog
// @Failure 404 {object} response.ErrorResponse "Пост не найден"
// @Router /api/blogs/{id} [get]
func (r *Routers) GetBlogByID(c echo.Context) error {
	const op = "http.routers.GetBlogByID"
	log := r.log.With(slog.String("op", op))

	id, err := parseID(c, entityBlog)
	if err != nil {
		return r.fail(c, log, err)
	}

	blog, err := r.BlogService.GetBlogByID(c.Request().Context(), id)
	if err != nil {
		return r.fail(c, log, err)
	}

	r.resolveURLs(c, blog)
	return c.JSON(http.StatusOK, blog)
}

// UpdateBlog godoc
// @Summary Обновление поста
// @Description Новая обложка заменяет старую, новые изображения добавляются к существующим.
// @Tags Blogs
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "UUID поста" format(uuid)
// @Param thumbnail formData file false "Новая обложка"
// @Param images formData file false "Дополнительные изображения"
// @Success 200 {object} response.Response{data=models.Blog}
// @Failure 400 {object} response.ErrorResponse "Неверные данные"
// @Failure 404 {object} response.ErrorResponse "Пост не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/blogs/{id} [put]
func (r *Routers) UpdateBlog(c echo.Context) error {
	const op = "http.routers.UpdateBlog"
	log := r.log.With(slog.String("op", op))

	id, err := parseID(c, entityBlog)
	if err != nil {
		return r.fail(c, log, err)
	}

	fields, err := parseRequest(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	var req request.BlogUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return r.fail(c, log, errInvalidBody)
	}
	trimSpace(&req)

	in := dto.UpdateBlogInput{
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Content:  fields.content("content"),
		Category: req.Category,
		Author:   req.Author,
		Files:    fields.files,
	}
	if err := c.Validate(in); err != nil {
		return r.fail(c, log, err)
	}

	blog, err := r.BlogService.UpdateBlog(c.Request().Context(), id, in)
	if err != nil {
		return r.fail(c, log, err)
	}

	r.resolveURLs(c, blog)
	return c.JSON(http.StatusOK, response.Success("Blog updated successfully", blog))
}

// DeleteBlog godoc
// @Summary Удаление поста
// @Tags Blogs
// @Produce json
// @Param id path string true "UUID поста" format(uuid)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Пост не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/blogs/{id} [delete]
func (r *Routers) DeleteBlog(c echo.Context) error {
	const op = "http.routers.DeleteBlog"
	log := r.log.With(slog.String("op", op))

	id, err := parseID(c, entityBlog)
	if err != nil {
		return r.fail(c, log, err)
	}

	if err := r.BlogService.DeleteBlog(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}
	r.statsChanged()

	return c.JSON(http.StatusOK, response.Success("Blog deleted successfully", nil))
}
