package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"architylez/internal/domain/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestResolveURLs(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	product := func() *models.Product {
		return &models.Product{
			Thumbnail: models.AssetRef{URL: "/uploads/products/1.png", Identifier: "products/1.png"},
			Images: models.AssetRefs{
				{URL: "/uploads/products/2.png", Identifier: "products/2.png"},
				{URL: "https://cdn.example.com/products/3.png", Identifier: "products/3.png"},
			},
		}
	}

	t.Run("request host", func(t *testing.T) {
		r := NewRouter(log, "", Services{}, nil)
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.Host = "api.example.com"
		c := echo.New().NewContext(req, httptest.NewRecorder())

		p := product()
		r.resolveURLs(c, p)

		assert.Equal(t, "http://api.example.com/uploads/products/1.png", p.Thumbnail.URL)
		assert.Equal(t, "http://api.example.com/uploads/products/2.png", p.Images[0].URL)
		assert.Equal(t, "https://cdn.example.com/products/3.png", p.Images[1].URL)
	})

	t.Run("base url override", func(t *testing.T) {
		r := NewRouter(log, "https://architylez.example/", Services{}, nil)
		c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

		list := []models.Catalogue{
			{PDF: models.AssetRef{URL: "/uploads/catalogues/a.pdf"}},
			{PDF: models.AssetRef{URL: "/uploads/catalogues/b.pdf"}, Thumbnail: &models.AssetRef{URL: "uploads/catalogues/b.jpg"}},
		}
		r.resolveURLs(c, list)

		assert.Equal(t, "https://architylez.example/uploads/catalogues/a.pdf", list[0].PDF.URL)
		assert.Nil(t, list[0].Thumbnail)
		assert.Equal(t, "https://architylez.example/uploads/catalogues/b.jpg", list[1].Thumbnail.URL)
	})
}
