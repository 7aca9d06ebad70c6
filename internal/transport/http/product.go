package http

import (
	"log/slog"
	"net/http"

	"architylez/internal/domain/models"
	"architylez/internal/lib/logger/sl"
	"architylez/internal/transport/http/dto"
	"architylez/internal/transport/http/dto/request"
	"architylez/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

const entityProduct = "Product"

// CreateProduct godoc
// @Summary Создание товара
// @Description Принимает multipart-форму: поля товара, thumbnail (1 файл) и images (1-10 файлов).
// @Description Списки size, finish, filterSize, application можно передать повторяющимися полями, JSON-массивом или строкой через запятую.
// @Tags Products
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Название"
// @Param description formData string true "Описание"
// @Param size formData []string true "Размеры" collectionFormat(multi)
// @Param category formData string true "Категория" Enums(GVT, Subway, Wall, Wood)
// @Param finish formData []string true "Покрытие" collectionFormat(multi)
// @Param filterSize formData []string true "Размеры для фильтра" collectionFormat(multi)
// @Param coverageArea formData number false "Площадь покрытия"
// @Param pcsPerBox formData integer false "Штук в коробке"
// @Param thumbnail formData file true "Обложка"
// @Param images formData file true "Изображения"
// @Success 201 {object} response.Response{data=models.Product}
// @Failure 400 {object} response.ErrorResponse "Не заполнены поля или неверный файл"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/products [post]
func (r *Routers) CreateProduct(c echo.Context) error {
	const op = "http.routers.CreateProduct"
	log := r.log.With(slog.String("op", op))

	fields, err := parseRequest(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	var req request.ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return r.fail(c, log, errInvalidBody)
	}
	trimSpace(&req)

	in, err := createProductInput(req, fields)
	if err != nil {
		return r.fail(c, log, err)
	}

	if err := c.Validate(in); err != nil {
		return r.fail(c, log, err)
	}

	product, err := r.ProductService.CreateProduct(c.Request().Context(), in)
	if err != nil {
		return r.fail(c, log, err)
	}
	r.statsChanged()

	r.resolveURLs(c, product)
	return c.JSON(http.StatusCreated, response.Success("Product created successfully", product))
}

// GetProducts godoc
// @Summary Список товаров
// @Description Товары от новых к старым. Необязательные фильтры по категории и покрытию.
// @Tags Products
// @Produce json
// @Param category query string false "Категория"
// @Param finish query []string false "Покрытие (любое из)" collectionFormat(multi)
// @Success 200 {array} models.Product
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/products [get]
func (r *Routers) GetProducts(c echo.Context) error {
	const op = "http.routers.GetProducts"
	log := r.log.With(slog.String("op", op))

	query := &requestFields{form: c.QueryParams()}
	filter := models.ProductFilter{
		Category: query.str("category"),
		Finish:   query.list("finish"),
	}

	products, err := r.ProductService.GetProducts(c.Request().Context(), filter)
	if err != nil {
		return r.fail(c, log, err)
	}

	r.resolveURLs(c, products)
	return c.JSON(http.StatusOK, products)
}

// GetProductByID godoc
// @Summary Товар по id
// @Tags Products
// @Produce json
// @Param id path string true "UUID товара" format(uuid)
// @Success 200 {object} models.Product
// @Failure 404 {object} response.ErrorResponse "Товар не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/products/{id} [get]
func (r *Routers) GetProductByID(c echo.Context) error {
	const op = "http.routers.GetProductByID"
	log := r.log.With(slog.String("op", op))

	id, err := parseID(c, entityProduct)
	if err != nil {
		return r.fail(c, log, err)
	}

	product, err := r.ProductService.GetProductByID(c.Request().Context(), id)
	if err != nil {
		return r.fail(c, log, err)
	}

	r.resolveURLs(c, product)
	return c.JSON(http.StatusOK, product)
}

// UpdateProduct godoc
// @Summary Обновление товара
// @Description Частичное обновление. Новый thumbnail заменяет старый, новые images заменяют весь список.
// @Tags Products
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "UUID товара" format(uuid)
// @Param thumbnail formData file false "Новая обложка"
// @Param images formData file false "Новые изображения"
// @Success 200 {object} response.Response{data=models.Product}
// @Failure 400 {object} response.ErrorResponse "Неверные данные"
// @Failure 404 {object} response.ErrorResponse "Товар не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/products/{id} [put]
func (r *Routers) UpdateProduct(c echo.Context) error {
	const op = "http.routers.UpdateProduct"
	log := r.log.With(slog.String("op", op))

	id, err := parseID(c, entityProduct)
	if err != nil {
		return r.fail(c, log, err)
	}

	fields, err := parseRequest(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	var req request.ProductUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return r.fail(c, log, errInvalidBody)
	}
	trimSpace(&req)

	in, err := updateProductInput(req, fields)
	if err != nil {
		return r.fail(c, log, err)
	}

	if err := c.Validate(in); err != nil {
		return r.fail(c, log, err)
	}

	product, err := r.ProductService.UpdateProduct(c.Request().Context(), id, in)
	if err != nil {
		return r.fail(c, log, err)
	}

	r.resolveURLs(c, product)
	return c.JSON(http.StatusOK, response.Success("Product updated successfully", product))
}

// DeleteProduct godoc
// @Summary Удаление товара
// @Description Удаляет товар и все его файлы.
// @Tags Products
// @Produce json
// @Param id path string true "UUID товара" format(uuid)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Товар не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/products/{id} [delete]
func (r *Routers) DeleteProduct(c echo.Context) error {
	const op = "http.routers.DeleteProduct"
	log := r.log.With(slog.String("op", op))

	id, err := parseID(c, entityProduct)
	if err != nil {
		return r.fail(c, log, err)
	}

	if err := r.ProductService.DeleteProduct(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}
	r.statsChanged()

	return c.JSON(http.StatusOK, response.Success("Product deleted successfully", nil))
}

func createProductInput(req request.ProductRequest, f *requestFields) (dto.CreateProductInput, error) {
	coverage, err := f.number("coverageArea")
	if err != nil {
		return dto.CreateProductInput{}, err
	}
	pcs, err := f.integer("pcsPerBox")
	if err != nil {
		return dto.CreateProductInput{}, err
	}

	return dto.CreateProductInput{
		Title:           req.Title,
		Description:     req.Description,
		Size:            f.list("size"),
		Category:        req.Category,
		Finish:          f.list("finish"),
		FilterSize:      f.list("filterSize"),
		ActualSize:      req.ActualSize,
		MaterialType:    req.MaterialType,
		Application:     f.list("application"),
		Brand:           req.Brand,
		Quality:         req.Quality,
		CoverageArea:    coverage,
		PcsPerBox:       pcs,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		Files:           f.files,
	}, nil
}

func updateProductInput(req request.ProductUpdateRequest, f *requestFields) (dto.UpdateProductInput, error) {
	coverage, err := f.number("coverageArea")
	if err != nil {
		return dto.UpdateProductInput{}, err
	}
	pcs, err := f.integer("pcsPerBox")
	if err != nil {
		return dto.UpdateProductInput{}, err
	}

	return dto.UpdateProductInput{
		Title:           req.Title,
		Description:     req.Description,
		Size:            f.list("size"),
		Category:        req.Category,
		Finish:          f.list("finish"),
		FilterSize:      f.list("filterSize"),
		ActualSize:      req.ActualSize,
		MaterialType:    req.MaterialType,
		Application:     f.list("application"),
		Brand:           req.Brand,
		Quality:         req.Quality,
		CoverageArea:    coverage,
		PcsPerBox:       pcs,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		Files:           f.files,
	}, nil
}
