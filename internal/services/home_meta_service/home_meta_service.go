package services

import (
	"context"
	"errors"
	"log/slog"

	"architylez/internal/domain/models"
	"architylez/internal/lib/logger/sl"
	"architylez/internal/lib/repoerr"
	"architylez/internal/lib/validate"
	"architylez/internal/repository"
	"architylez/internal/storage"
	"architylez/internal/transport/http/dto"
)

const (
	entity = "Meta"

	MsgAlreadyExists = "Home Meta already exists"
)

type HomeMetaService struct {
	log  *slog.Logger
	repo repository.HomeMetaRepository
}

func NewHomeMetaService(log *slog.Logger, repo repository.HomeMetaRepository) *HomeMetaService {
	return &HomeMetaService{log: log, repo: repo}
}

// GetHomeMeta возвращает nil без ошибки, если документ еще не создан.
func (s *HomeMetaService) GetHomeMeta(ctx context.Context) (*models.HomeMeta, error) {
	const op = "home_meta_service.GetHomeMeta"

	meta, err := s.repo.GetHomeMeta(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		s.log.Error("failed to get home meta", slog.String("op", op), sl.Err(err))
		return nil, repoerr.Wrap(op, entity, err)
	}

	return meta, nil
}

func (s *HomeMetaService) CreateHomeMeta(ctx context.Context, in dto.HomeMetaInput) (*models.HomeMeta, error) {
	const op = "home_meta_service.CreateHomeMeta"
	log := s.log.With(slog.String("op", op))

	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	meta, err := s.repo.SaveHomeMeta(ctx, models.HomeMeta{Title: in.Title, Description: in.Description})
	if errors.Is(err, storage.ErrAlreadyExists) {
		return nil, &models.ConflictError{Message: MsgAlreadyExists}
	}
	if err != nil {
		log.Error("failed to save home meta", sl.Err(err))
		return nil, repoerr.Wrap(op, entity, err)
	}

	log.Info("home meta created")
	return meta, nil
}

// UpsertHomeMeta обновляет документ или создает его, если строки еще нет.
// Для создания нужны оба поля.
func (s *HomeMetaService) UpsertHomeMeta(ctx context.Context, in dto.UpdateHomeMetaInput) (*models.HomeMeta, error) {
	const op = "home_meta_service.UpsertHomeMeta"
	log := s.log.With(slog.String("op", op))

	updates := in.Updates()

	existing, err := s.repo.GetHomeMeta(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return s.insertForUpsert(ctx, in)
	case err != nil:
		log.Error("failed to get home meta", sl.Err(err))
		return nil, repoerr.Wrap(op, entity, err)
	}

	if len(updates) == 0 {
		return existing, nil
	}

	meta, err := s.repo.UpdateHomeMetaFields(ctx, updates)
	if err != nil {
		log.Error("failed to update home meta", sl.Err(err))
		return nil, repoerr.Wrap(op, entity, err)
	}

	log.Info("home meta updated")
	return meta, nil
}

func (s *HomeMetaService) insertForUpsert(ctx context.Context, in dto.UpdateHomeMetaInput) (*models.HomeMeta, error) {
	const op = "home_meta_service.UpsertHomeMeta"

	create := dto.HomeMetaInput{}
	if in.Title != nil {
		create.Title = *in.Title
	}
	if in.Description != nil {
		create.Description = *in.Description
	}

	if err := validate.Struct(create); err != nil {
		return nil, err
	}

	meta, err := s.repo.SaveHomeMeta(ctx, models.HomeMeta{Title: create.Title, Description: create.Description})
	if errors.Is(err, storage.ErrAlreadyExists) {
		// строку успел создать параллельный запрос
		meta, err = s.repo.UpdateHomeMetaFields(ctx, in.Updates())
	}
	if err != nil {
		s.log.Error("failed to upsert home meta", slog.String("op", op), sl.Err(err))
		return nil, repoerr.Wrap(op, entity, err)
	}

	s.log.Info("home meta created on update", slog.String("op", op))
	return meta, nil
}

func (s *HomeMetaService) DeleteHomeMeta(ctx context.Context) error {
	const op = "home_meta_service.DeleteHomeMeta"

	if err := s.repo.DeleteHomeMeta(ctx); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Error("failed to delete home meta", slog.String("op", op), sl.Err(err))
		}
		return repoerr.Wrap(op, entity, err)
	}

	s.log.Info("home meta deleted", slog.String("op", op))
	return nil
}
