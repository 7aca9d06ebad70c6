package storage

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

var (
	ErrInvalidPath   = errors.New("invalid file path")
	ErrEmptyFile     = errors.New("empty file")
	ErrBucketMissing = errors.New("bucket does not exist")
)
