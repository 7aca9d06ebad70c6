package uploader

import (
	"context"
	"errors"
	"log/slog"

	"architylez/internal/domain/models"
	"architylez/internal/lib/logger/sl"
	"architylez/internal/metrics"
	"architylez/internal/storage/filestorage"

	"golang.org/x/sync/errgroup"
)

// maxParallel ограничивает число одновременных загрузок одного запроса
const maxParallel = 4

// Uploader общая для сервисов обвязка над FileStorage: сохранение пачкой,
// откат уже сохраненного и удаление без проброса ошибок.
type Uploader struct {
	log     *slog.Logger
	storage filestorage.FileStorage
}

func New(log *slog.Logger, storage filestorage.FileStorage) *Uploader {
	return &Uploader{log: log, storage: storage}
}

// StoreOne сохраняет один файл. Отмена клиентом запрос к хранилищу не прерывает.
func (u *Uploader) StoreOne(ctx context.Context, file filestorage.File, folder string) (models.AssetRef, error) {
	const op = "uploader.StoreOne"

	ref, err := u.storage.Store(context.WithoutCancel(ctx), file, folder)
	metrics.AssetOperations.WithLabelValues("store", metrics.Result(err)).Inc()
	if err != nil {
		u.log.Error("failed to store file",
			slog.String("op", op),
			slog.String("field", file.Field),
			slog.String("folder", folder),
			sl.Err(err),
		)
		return models.AssetRef{}, &models.StorageError{Op: "store", Err: err}
	}

	return ref, nil
}

// StoreMany uploads files concurrently and keeps their order. The first error
// wins; files already stored by this call are removed before returning it.
func (u *Uploader) StoreMany(ctx context.Context, files []filestorage.File, folder string) (models.AssetRefs, error) {
	if len(files) == 0 {
		return models.AssetRefs{}, nil
	}

	refs := make(models.AssetRefs, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			ref, err := u.StoreOne(ctx, file, folder)
			if err != nil {
				return err
			}
			refs[i] = ref
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		stored := make(models.AssetRefs, 0, len(refs))
		for _, ref := range refs {
			if !ref.IsZero() {
				stored = append(stored, ref)
			}
		}
		u.DeleteMany(ctx, stored...)

		var serr *models.StorageError
		if !errors.As(err, &serr) {
			err = &models.StorageError{Op: "store", Err: err}
		}
		return nil, err
	}

	return refs, nil
}

// DeleteMany удаляет файлы по одному. Ошибки только логируются.
func (u *Uploader) DeleteMany(ctx context.Context, refs ...models.AssetRef) {
	const op = "uploader.DeleteMany"

	ctx = context.WithoutCancel(ctx)
	for _, id := range models.AssetRefs(refs).Identifiers() {
		err := u.storage.Delete(ctx, id)
		metrics.AssetOperations.WithLabelValues("delete", metrics.Result(err)).Inc()
		if err != nil {
			u.log.Warn("failed to delete file",
				slog.String("op", op),
				slog.String("identifier", id),
				sl.Err(err),
			)
		}
	}
}

// DerivePreview returns a first-page preview URL when the storage can build one.
func (u *Uploader) DerivePreview(ctx context.Context, identifier string) (string, bool) {
	const op = "uploader.DerivePreview"

	deriver, ok := u.storage.(filestorage.PreviewDeriver)
	if !ok {
		return "", false
	}

	url, err := deriver.DerivePreview(context.WithoutCancel(ctx), identifier)
	if err == nil && url == "" {
		err = errors.New("empty preview url")
	}
	if err != nil {
		u.log.Warn("failed to derive preview",
			slog.String("op", op),
			slog.String("identifier", identifier),
			sl.Err(err),
		)
		return "", false
	}

	return url, true
}

// ImageMode определяет, что делает обновление со списком изображений сущности.
type ImageMode int

const (
	// ImagesReplace: новые изображения заменяют старые, старые удаляются после сохранения записи
	ImagesReplace ImageMode = iota
	// ImagesAppend: новые изображения дописываются в конец списка
	ImagesAppend
)

// ImageUpdate результат StoreImages: новый список для записи, что сохранено
// этим вызовом и что удалить после успешного обновления.
type ImageUpdate struct {
	Images   models.AssetRefs
	Stored   models.AssetRefs
	Replaced models.AssetRefs
}

// StoreImages сохраняет новые изображения и строит итоговый список по mode.
func (u *Uploader) StoreImages(ctx context.Context, mode ImageMode, existing models.AssetRefs, files []filestorage.File, folder string) (ImageUpdate, error) {
	images, err := u.StoreMany(ctx, files, folder)
	if err != nil {
		return ImageUpdate{}, err
	}

	if mode == ImagesReplace {
		return ImageUpdate{Images: images, Stored: images, Replaced: existing}, nil
	}

	merged := make(models.AssetRefs, 0, len(existing)+len(images))
	merged = append(merged, existing...)
	merged = append(merged, images...)

	return ImageUpdate{Images: merged, Stored: images}, nil
}
