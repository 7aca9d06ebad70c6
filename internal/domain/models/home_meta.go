package models

import (
	"time"

	"github.com/google/uuid"
)

// HomeMeta единственный документ с SEO-данными главной страницы.
type HomeMeta struct {
	ID          uuid.UUID `json:"_id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type Stats struct {
	Products   int `json:"products"`
	Catalogues int `json:"catalogues"`
	Blogs      int `json:"blogs"`
	Contacts   int `json:"contacts"`
}
