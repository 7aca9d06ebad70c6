package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"architylez/internal/domain/models"
	"architylez/internal/mailer"
	services "architylez/internal/services/contact_service"
	"architylez/internal/storage"
	"architylez/internal/transport/http/dto"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) SaveContact(ctx context.Context, contact models.ContactForm) (*models.ContactForm, error) {
	args := m.Called(ctx, contact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContactForm), args.Error(1)
}

func (m *MockContactRepository) GetContacts(ctx context.Context) ([]models.ContactForm, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ContactForm), args.Error(1)
}

func (m *MockContactRepository) DeleteContact(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendAdminNotification(ctx context.Context, n mailer.ContactNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Hit(ctx context.Context, scope, subject string, window time.Duration) (int64, error) {
	args := m.Called(ctx, scope, subject, window)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRateLimiter) Reset(ctx context.Context, scope, subject string) error {
	args := m.Called(ctx, scope, subject)
	return args.Error(0)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestContactService_SubmitContact(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes, saves and notifies", func(t *testing.T) {
		repo := new(MockContactRepository)
		notifier := new(MockNotifier)
		svc := services.NewContactService(discard(), repo, notifier)

		id := uuid.New()
		saved := &models.ContactForm{ID: id, Name: "Ann", Email: "ann@example.com", Message: "Hello"}

		repo.On("SaveContact", ctx, models.ContactForm{Name: "Ann", Email: "ann@example.com", Message: "Hello"}).
			Return(saved, nil).Once()
		notifier.On("SendAdminNotification", mock.Anything, mailer.ContactNotification{
			Name: "Ann", Email: "ann@example.com", Message: "Hello",
		}).Return(nil).Once()

		contact, err := svc.SubmitContact(ctx, dto.ContactFormInput{
			Name:    "  Ann ",
			Email:   " ANN@Example.com ",
			Message: "Hello\n",
		}, "10.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, id, contact.ID)
		repo.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	tests := []struct {
		name string
		in   dto.ContactFormInput
	}{
		{"missing name", dto.ContactFormInput{Email: "a@b.c", Message: "m"}},
		{"blank email", dto.ContactFormInput{Name: "n", Email: "   ", Message: "m"}},
		{"missing message", dto.ContactFormInput{Name: "n", Email: "a@b.c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockContactRepository)
			notifier := new(MockNotifier)
			svc := services.NewContactService(discard(), repo, notifier)

			_, err := svc.SubmitContact(ctx, tt.in, "")

			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, services.MsgFieldsRequired, verr.Message)
			repo.AssertNotCalled(t, "SaveContact", mock.Anything, mock.Anything)
		})
	}

	t.Run("notification failure removes contact", func(t *testing.T) {
		repo := new(MockContactRepository)
		notifier := new(MockNotifier)
		svc := services.NewContactService(discard(), repo, notifier)

		id := uuid.New()
		repo.On("SaveContact", ctx, mock.Anything).
			Return(&models.ContactForm{ID: id, Name: "n", Email: "e@x.io", Message: "m"}, nil).Once()
		notifier.On("SendAdminNotification", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()
		repo.On("DeleteContact", mock.Anything, id).Return(nil).Once()

		_, err := svc.SubmitContact(ctx, dto.ContactFormInput{Name: "n", Email: "e@x.io", Message: "m"}, "")

		var nerr *models.NotificationError
		require.ErrorAs(t, err, &nerr)
		repo.AssertExpectations(t)
	})

	t.Run("save failure skips notification", func(t *testing.T) {
		repo := new(MockContactRepository)
		notifier := new(MockNotifier)
		svc := services.NewContactService(discard(), repo, notifier)

		repo.On("SaveContact", ctx, mock.Anything).Return(nil, errors.New("db down")).Once()

		_, err := svc.SubmitContact(ctx, dto.ContactFormInput{Name: "n", Email: "e@x.io", Message: "m"}, "")

		var perr *models.PersistenceError
		require.ErrorAs(t, err, &perr)
		notifier.AssertNotCalled(t, "SendAdminNotification", mock.Anything, mock.Anything)
	})
}

func TestContactService_RateLimit(t *testing.T) {
	ctx := context.Background()
	window := 10 * time.Minute
	ip := gofakeit.IPv4Address()

	repo := new(MockContactRepository)
	notifier := new(MockNotifier)
	limiter := new(MockRateLimiter)
	svc := services.NewContactService(discard(), repo, notifier).
		WithRateLimit(limiter, services.RateLimit{Limit: 2, Window: window})

	in := dto.ContactFormInput{Name: "n", Email: "e@x.io", Message: "m"}

	repo.On("SaveContact", ctx, mock.Anything).Return(&models.ContactForm{ID: uuid.New()}, nil).Twice()
	notifier.On("SendAdminNotification", mock.Anything, mock.Anything).Return(nil).Twice()
	limiter.On("Hit", ctx, "contact", ip, window).Return(int64(1), nil).Once()
	limiter.On("Hit", ctx, "contact", ip, window).Return(int64(2), nil).Once()
	limiter.On("Hit", ctx, "contact", ip, window).Return(int64(3), nil).Once()

	for i := 0; i < 2; i++ {
		_, err := svc.SubmitContact(ctx, in, ip)
		require.NoError(t, err)
	}

	_, err := svc.SubmitContact(ctx, in, ip)

	var rerr *models.RateLimitError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, services.MsgTooManyRequests, rerr.Message)
	repo.AssertNumberOfCalls(t, "SaveContact", 2)

	t.Run("limiter error lets request through", func(t *testing.T) {
		repo := new(MockContactRepository)
		notifier := new(MockNotifier)
		limiter := new(MockRateLimiter)
		svc := services.NewContactService(discard(), repo, notifier).
			WithRateLimit(limiter, services.RateLimit{Limit: 1, Window: window})

		limiter.On("Hit", ctx, "contact", ip, window).Return(int64(0), errors.New("redis: connection refused")).Once()
		repo.On("SaveContact", ctx, mock.Anything).Return(&models.ContactForm{ID: uuid.New()}, nil).Once()
		notifier.On("SendAdminNotification", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := svc.SubmitContact(ctx, in, ip)
		require.NoError(t, err)
	})
}

func TestContactService_GetAndDelete(t *testing.T) {
	ctx := context.Background()

	repo := new(MockContactRepository)
	svc := services.NewContactService(discard(), repo, new(MockNotifier))

	repo.On("GetContacts", ctx).Return([]models.ContactForm{{Name: "a"}, {Name: "b"}}, nil).Once()
	contacts, err := svc.GetContacts(ctx)
	require.NoError(t, err)
	assert.Len(t, contacts, 2)

	id := uuid.New()
	repo.On("DeleteContact", ctx, id).Return(storage.ErrNotFound).Once()
	err = svc.DeleteContact(ctx, id)
	assert.EqualError(t, err, "Contact not found")
}
