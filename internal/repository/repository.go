package repository

import (
	"github.com/jackc/pgx/v4/pgxpool"
)

// Repository собирает все репозитории поверх одного пула.
type Repository struct {
	Product   ProductRepository
	Catalogue CatalogueRepository
	Blog      BlogRepository
	Project   ProjectRepository
	Contact   ContactRepository
	HomeMeta  HomeMetaRepository
	Stats     StatsRepository
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		Product:   NewProductRepository(db),
		Catalogue: NewCatalogueRepository(db),
		Blog:      NewBlogRepository(db),
		Project:   NewProjectRepository(db),
		Contact:   NewContactRepository(db),
		HomeMeta:  NewHomeMetaRepository(db),
		Stats:     NewStatsRepository(db),
	}
}
