package http

import (
	"strings"

	"architylez/internal/domain/models"

	"github.com/labstack/echo/v4"
)

// publicBase адрес, от которого строятся ссылки на локальные файлы:
// BASE_URL из конфига или схема и хост текущего запроса.
func (r *Routers) publicBase(c echo.Context) string {
	if r.baseURL != "" {
		return strings.TrimRight(r.baseURL, "/")
	}
	return c.Scheme() + "://" + c.Request().Host
}

// resolveURLs переписывает относительные ссылки документа в абсолютные.
// Ссылки со схемой не меняются.
func (r *Routers) resolveURLs(c echo.Context, doc interface{}) {
	base := r.publicBase(c)

	switch d := doc.(type) {
	case *models.Product:
		absolute(base, &d.Thumbnail)
		absoluteAll(base, d.Images)
	case []models.Product:
		for i := range d {
			r.resolveURLs(c, &d[i])
		}
	case *models.Catalogue:
		absolute(base, &d.PDF)
		absolute(base, d.Thumbnail)
	case []models.Catalogue:
		for i := range d {
			r.resolveURLs(c, &d[i])
		}
	case *models.Blog:
		absolute(base, d.Thumbnail)
		absoluteAll(base, d.Images)
	case []models.Blog:
		for i := range d {
			r.resolveURLs(c, &d[i])
		}
	case *models.Project:
		absolute(base, &d.Thumbnail)
		absoluteAll(base, d.Images)
	case []models.Project:
		for i := range d {
			r.resolveURLs(c, &d[i])
		}
	}
}

func absolute(base string, ref *models.AssetRef) {
	if ref == nil || !ref.IsRelative() {
		return
	}
	ref.URL = base + "/" + strings.TrimLeft(ref.URL, "/")
}

func absoluteAll(base string, refs models.AssetRefs) {
	for i := range refs {
		absolute(base, &refs[i])
	}
}
