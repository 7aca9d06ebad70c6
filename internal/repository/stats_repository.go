package repository

import (
	"context"
	"fmt"

	"architylez/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"
	"golang.org/x/sync/errgroup"
)

type StatsRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewStatsRepository(db *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{
		db: db,
		sb: newBuilder(),
	}
}

// GetStats считает строки четырех таблиц параллельно. Первая ошибка отменяет остальные запросы.
func (r *StatsRepo) GetStats(ctx context.Context) (models.Stats, error) {
	const op = "repository.stats_repository.GetStats"

	var stats models.Stats

	g, gctx := errgroup.WithContext(ctx)
	targets := []struct {
		table string
		dst   *int
	}{
		{"products", &stats.Products},
		{"catalogues", &stats.Catalogues},
		{"blogs", &stats.Blogs},
		{"contact_forms", &stats.Contacts},
	}

	for _, target := range targets {
		target := target
		g.Go(func() error {
			count, err := countRows(gctx, r.db, r.sb, target.table)
			if err != nil {
				return err
			}
			*target.dst = count
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return models.Stats{}, fmt.Errorf("%s: %w", op, err)
	}

	return stats, nil
}
