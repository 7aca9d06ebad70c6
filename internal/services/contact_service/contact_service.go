package services

import (
	"context"
	"log/slog"
	"time"

	"architylez/internal/domain/models"
	"architylez/internal/lib/logger/sl"
	"architylez/internal/lib/repoerr"
	"architylez/internal/mailer"
	"architylez/internal/metrics"
	"architylez/internal/repository"
	"architylez/internal/transport/http/dto"

	"github.com/google/uuid"
)

const (
	entity = "Contact"

	rateLimitScope = "contact"

	MsgFieldsRequired  = dto.MsgContactFieldsRequired
	MsgTooManyRequests = "Too many submissions, please try later"
)

type Notifier interface {
	SendAdminNotification(ctx context.Context, n mailer.ContactNotification) error
}

// RateLimit фиксированное окно на IP. Limit <= 0 отключает проверку.
type RateLimit struct {
	Limit  int
	Window time.Duration
}

type ContactService struct {
	log      *slog.Logger
	repo     repository.ContactRepository
	notifier Notifier
	limiter  repository.RateLimitRepository
	limit    RateLimit
}

func NewContactService(log *slog.Logger, repo repository.ContactRepository, notifier Notifier) *ContactService {
	return &ContactService{
		log:      log,
		repo:     repo,
		notifier: notifier,
	}
}

// WithRateLimit включает ограничение числа заявок. Без Redis не вызывается.
func (s *ContactService) WithRateLimit(limiter repository.RateLimitRepository, limit RateLimit) *ContactService {
	s.limiter = limiter
	s.limit = limit
	return s
}

// SubmitContact сохраняет заявку и уведомляет администратора. Если письмо не
// ушло, заявка удаляется и возвращается NotificationError.
func (s *ContactService) SubmitContact(ctx context.Context, in dto.ContactFormInput, clientIP string) (*models.ContactForm, error) {
	const op = "contact_service.SubmitContact"
	log := s.log.With(slog.String("op", op))

	if err := in.Validate(); err != nil {
		log.Warn("invalid contact form", sl.Err(err))
		return nil, err
	}
	contact := in.ToDomain()

	if err := s.checkRate(ctx, clientIP); err != nil {
		log.Warn("contact rate limited", slog.String("ip", clientIP))
		return nil, err
	}

	saved, err := s.repo.SaveContact(ctx, contact)
	if err != nil {
		log.Error("failed to save contact", sl.Err(err))
		return nil, repoerr.Wrap(op, entity, err)
	}

	err = s.notifier.SendAdminNotification(context.WithoutCancel(ctx), mailer.ContactNotification{
		Name:    saved.Name,
		Email:   saved.Email,
		Phone:   saved.Phone,
		Service: saved.Service,
		Message: saved.Message,
	})
	metrics.ContactNotifications.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		log.Error("failed to notify admin, rolling back contact", sl.Err(err))
		if derr := s.repo.DeleteContact(context.WithoutCancel(ctx), saved.ID); derr != nil {
			log.Error("failed to delete contact after notification failure", sl.Err(derr))
		}
		return nil, &models.NotificationError{Err: err}
	}

	log.Info("contact submitted", slog.String("contact_id", saved.ID.String()))
	return saved, nil
}

// checkRate ошибки Redis не блокируют заявку
func (s *ContactService) checkRate(ctx context.Context, clientIP string) error {
	if s.limiter == nil || s.limit.Limit <= 0 || clientIP == "" {
		return nil
	}

	count, err := s.limiter.Hit(ctx, rateLimitScope, clientIP, s.limit.Window)
	if err != nil {
		s.log.Warn("rate limiter unavailable", sl.Err(err))
		return nil
	}

	if count > int64(s.limit.Limit) {
		return &models.RateLimitError{Message: MsgTooManyRequests}
	}

	return nil
}

func (s *ContactService) GetContacts(ctx context.Context) ([]models.ContactForm, error) {
	const op = "contact_service.GetContacts"

	contacts, err := s.repo.GetContacts(ctx)
	if err != nil {
		s.log.Error("failed to list contacts", slog.String("op", op), sl.Err(err))
		return nil, repoerr.Wrap(op, entity, err)
	}

	return contacts, nil
}

func (s *ContactService) DeleteContact(ctx context.Context, id uuid.UUID) error {
	const op = "contact_service.DeleteContact"

	if err := s.repo.DeleteContact(ctx, id); err != nil {
		return repoerr.Wrap(op, entity, err)
	}

	s.log.Info("contact deleted", slog.String("op", op), slog.String("contact_id", id.String()))
	return nil
}
