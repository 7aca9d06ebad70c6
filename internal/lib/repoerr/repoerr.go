package repoerr

import (
	"errors"

	"architylez/internal/domain/models"
	"architylez/internal/storage"
)

// Wrap переводит ошибку репозитория в доменную: отсутствие строки в
// NotFoundError сущности, остальное в PersistenceError.
func Wrap(op, entity string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, storage.ErrNotFound) {
		return &models.NotFoundError{Entity: entity}
	}

	return &models.PersistenceError{Op: op, Err: err}
}
