package filestorage

import (
	"context"
	"fmt"
	"log/slog"

	"architylez/internal/config"
	"architylez/internal/domain/models"
)

// FileStorage интерфейс для работы с файловым хранилищем
type FileStorage interface {
	Store(ctx context.Context, file File, folder string) (models.AssetRef, error)
	// Delete удаляет файл; отсутствие файла ошибкой не считается
	Delete(ctx context.Context, identifier string) error
}

// PreviewDeriver реализуют хранилища, умеющие строить превью первой страницы PDF.
type PreviewDeriver interface {
	DerivePreview(ctx context.Context, identifier string) (string, error)
}

// File загруженная часть multipart-формы, уже прочитанная в память.
type File struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

func (f File) Size() int64 {
	return int64(len(f.Data))
}

// New builds the storage selected by cfg.Provider.
func New(ctx context.Context, log *slog.Logger, cfg config.StorageConfig) (FileStorage, error) {
	const op = "filestorage.New"

	switch cfg.Provider {
	case config.StorageLocal, "":
		fs, err := NewLocalFileStorage(cfg.Local.Root)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		log.Info("using local file storage", slog.String("root", cfg.Local.Root))
		return fs, nil
	case config.StorageMinio:
		fs, err := NewMinioFileStorage(ctx, cfg.Minio)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		log.Info("using minio file storage",
			slog.String("endpoint", cfg.Minio.Endpoint),
			slog.String("bucket", cfg.Minio.Bucket),
		)
		return fs, nil
	default:
		return nil, fmt.Errorf("%s: unknown storage provider %q", op, cfg.Provider)
	}
}
