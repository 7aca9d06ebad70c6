package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"architylez/internal/domain/models"
	"architylez/internal/lib/logger/sl"
	"architylez/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// fail переводит доменную ошибку в статус и тело ответа.
func (r *Routers) fail(c echo.Context, log *slog.Logger, err error) error {
	var (
		validationErr   *models.ValidationError
		mediaErr        *models.UnsupportedMediaError
		notFoundErr     *models.NotFoundError
		conflictErr     *models.ConflictError
		rateLimitErr    *models.RateLimitError
		notificationErr *models.NotificationError
	)

	switch {
	case errors.As(err, &validationErr):
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Message: validationErr.Message,
			Error:   strings.Join(validationErr.Fields, ", "),
		})

	case errors.As(err, &mediaErr):
		log.Warn("file rejected", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.Error(response.MsgUnsupportedFile, mediaErr))

	case errors.As(err, &notFoundErr):
		return c.JSON(http.StatusNotFound, response.ErrorResponse{Message: notFoundErr.Error()})

	case errors.As(err, &conflictErr):
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: conflictErr.Message})

	case errors.As(err, &rateLimitErr):
		return c.JSON(http.StatusTooManyRequests, response.ErrorResponse{Message: rateLimitErr.Message})

	case errors.As(err, &notificationErr):
		log.Error("notification failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.Error(response.MsgNotification, notificationErr.Err))

	default:
		log.Error("request failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.Error(response.MsgServerError, cause(err)))
	}
}

// parseID: неверный id равносилен отсутствующему документу
func parseID(c echo.Context, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, &models.NotFoundError{Entity: entity}
	}
	return id, nil
}

// cause снимает обертку PersistenceError/StorageError для текста ответа
func cause(err error) error {
	if inner := errors.Unwrap(err); inner != nil {
		return inner
	}
	return err
}
