package filestorage

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"architylez/internal/domain/models"
	storageerr "architylez/internal/storage"

	"github.com/gabriel-vasile/mimetype"
)

// URLPrefix путь, под которым echo раздает локальные загрузки
const URLPrefix = "/uploads"

// LocalFileStorage реализация для локальной файловой системы.
// Файлы раскладываются по каталогу сущности: uploads/products, uploads/blogs и т.д.
type LocalFileStorage struct {
	baseDir string
}

func NewLocalFileStorage(baseDir string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{baseDir: baseDir}, nil
}

func (s *LocalFileStorage) Store(ctx context.Context, file File, folder string) (models.AssetRef, error) {
	const op = "filestorage.LocalFileStorage.Store"

	if err := ctx.Err(); err != nil {
		return models.AssetRef{}, err
	}

	if file.Size() == 0 {
		return models.AssetRef{}, fmt.Errorf("%s: %w", op, storageerr.ErrEmptyFile)
	}

	entity := entityDir(folder)
	dir := filepath.Join(s.baseDir, entity)

	// каталог создается при первой загрузке
	if err := os.MkdirAll(dir, 0755); err != nil {
		return models.AssetRef{}, fmt.Errorf("%s: failed to create directories: %w", op, err)
	}

	filename := generateFilename(file)
	fullPath := filepath.Join(dir, filename)

	if err := os.WriteFile(fullPath, file.Data, 0644); err != nil {
		_ = os.Remove(fullPath)
		return models.AssetRef{}, fmt.Errorf("%s: failed to write file: %w", op, err)
	}

	identifier := path.Join(entity, filename)

	return models.AssetRef{
		URL:         path.Join(URLPrefix, identifier),
		Identifier:  identifier,
		ContentType: file.ContentType,
		Size:        file.Size(),
	}, nil
}

// Delete удаляет файл из хранилища
func (s *LocalFileStorage) Delete(ctx context.Context, identifier string) error {
	const op = "filestorage.LocalFileStorage.Delete"

	fullPath, err := s.GetFullPath(identifier)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GetFullPath возвращает полный путь к файлу на диске
func (s *LocalFileStorage) GetFullPath(identifier string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(identifier))
	if identifier == "" || filepath.IsAbs(clean) || clean == "." || strings.HasPrefix(clean, "..") {
		return "", storageerr.ErrInvalidPath
	}

	return filepath.Join(s.baseDir, clean), nil
}

func (s *LocalFileStorage) GetBaseDir() string {
	return s.baseDir
}

// "products/thumbnails" -> "products"
func entityDir(folder string) string {
	folder = strings.Trim(folder, "/")
	if i := strings.Index(folder, "/"); i >= 0 {
		return folder[:i]
	}
	if folder == "" {
		return "misc"
	}
	return folder
}

// <unix-millis>-<random>.<ext>
func generateFilename(file File) string {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		if m := mimetype.Lookup(file.ContentType); m != nil {
			ext = m.Extension()
		}
	}

	return fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.Int63n(1e9), ext)
}
