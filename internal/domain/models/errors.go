package models

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError недостающие или некорректные поля и файлы запроса.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// UnsupportedMediaError файл отклонен политикой допуска (тип или размер).
type UnsupportedMediaError struct {
	Field       string
	ContentType string
	Size        int64
	Limit       int64
}

func (e *UnsupportedMediaError) Error() string {
	if e.Limit > 0 && e.Size > e.Limit {
		return fmt.Sprintf("file %q is too large: %d bytes, limit %d", e.Field, e.Size, e.Limit)
	}
	return fmt.Sprintf("file %q has unsupported type %q", e.Field, e.ContentType)
}

type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// ConflictError документ уже существует (HomeMeta).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification: %v", e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// RateLimitError слишком много заявок с одного адреса за окно.
type RateLimitError struct {
	Message string
}

func (e *RateLimitError) Error() string {
	return e.Message
}
