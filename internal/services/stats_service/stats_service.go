package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"architylez/internal/domain/models"
	"architylez/internal/lib/logger/sl"
	"architylez/internal/repository"

	"github.com/patrickmn/go-cache"
)

const (
	cacheKey = "admin:stats"

	MsgStatsFailed = "Failed to fetch stats"
)

var ErrStats = errors.New(MsgStatsFailed)

// StatsService отдает счетчики для админки. При ttl > 0 результат
// кэшируется в памяти процесса.
type StatsService struct {
	log   *slog.Logger
	repo  repository.StatsRepository
	cache *cache.Cache
	ttl   time.Duration
}

func NewStatsService(log *slog.Logger, repo repository.StatsRepository, ttl time.Duration) *StatsService {
	s := &StatsService{
		log:  log,
		repo: repo,
		ttl:  ttl,
	}

	if ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}

	return s
}

func (s *StatsService) GetStats(ctx context.Context) (models.Stats, error) {
	const op = "stats_service.GetStats"

	if s.cache != nil {
		if cached, ok := s.cache.Get(cacheKey); ok {
			return cached.(models.Stats), nil
		}
	}

	stats, err := s.repo.GetStats(ctx)
	if err != nil {
		s.log.Error("failed to fetch stats", slog.String("op", op), sl.Err(err))
		return models.Stats{}, &models.PersistenceError{Op: op, Err: errors.Join(ErrStats, err)}
	}

	if s.cache != nil {
		s.cache.Set(cacheKey, stats, cache.DefaultExpiration)
	}

	return stats, nil
}

// Invalidate сбрасывает кэш после изменения данных.
func (s *StatsService) Invalidate() {
	if s.cache != nil {
		s.cache.Delete(cacheKey)
	}
}
