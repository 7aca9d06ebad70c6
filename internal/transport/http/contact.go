package http

import (
	"log/slog"
	"net/http"

	"architylez/internal/lib/logger/sl"
	"architylez/internal/transport/http/dto"
	"architylez/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

const entityContact = "Contact"

// SubmitContact godoc
// @Summary Отправка формы обратной связи
// @Description Сохраняет заявку и уведомляет администратора по почте. Если письмо не ушло, заявка удаляется.
// @Tags Contact
// @Accept json
// @Produce json
// @Param input body dto.ContactFormInput true "Заявка"
// @Success 201 {object} response.Response{data=models.ContactForm}
// @Failure 400 {object} response.ErrorResponse "Не заполнены поля"
// @Failure 429 {object} response.ErrorResponse "Слишком много заявок"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера или почты"
// @Router /api/contact-forms [post]
func (r *Routers) SubmitContact(c echo.Context) error {
	const op = "http.routers.SubmitContact"
	log := r.log.With(slog.String("op", op))

	var in dto.ContactFormInput
	if err := c.Bind(&in); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return r.fail(c, log, errInvalidBody)
	}
	trimSpace(&in)

	if err := c.Validate(in); err != nil {
		return r.fail(c, log, err)
	}

	contact, err := r.ContactService.SubmitContact(c.Request().Context(), in, c.RealIP())
	if err != nil {
		return r.fail(c, log, err)
	}
	r.statsChanged()

	return c.JSON(http.StatusCreated, response.Success("Contact form submitted successfully", contact))
}

// GetContacts godoc
// @Summary Список заявок
// @Tags Contact
// @Produce json
// @Success 200 {array} models.ContactForm
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/contact-forms [get]
func (r *Routers) GetContacts(c echo.Context) error {
	const op = "http.routers.GetContacts"
	log := r.log.With(slog.String("op", op))

	contacts, err := r.ContactService.GetContacts(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, contacts)
}

// DeleteContact godoc
// @Summary Удаление заявки
// @Tags Contact
// @Produce json
// @Param id path string true "UUID заявки" format(uuid)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Заявка не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/contact-forms/{id} [delete]
func (r *Routers) DeleteContact(c echo.Context) error {
	const op = "http.routers.DeleteContact"
	log := r.log.With(slog.String("op", op))

	id, err := parseID(c, entityContact)
	if err != nil {
		return r.fail(c, log, err)
	}

	if err := r.ContactService.DeleteContact(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}
	r.statsChanged()

	return c.JSON(http.StatusOK, response.Success("Contact deleted successfully", nil))
}
