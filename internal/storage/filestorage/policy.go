package filestorage

import (
	"strings"

	"architylez/internal/domain/models"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MB = 1 << 20

	FieldThumbnail = "thumbnail"
	FieldImages    = "images"
	FieldPDF       = "pdf"
)

// Rule правило допуска файлов для одного поля формы.
type Rule struct {
	// Allowed точные MIME-типы или префикс вида "image/*"
	Allowed  []string
	MaxSize  int64 // 0 - без ограничения
	MaxFiles int
}

// Policy maps a form field to its admission rule. Fields absent from the
// policy are rejected.
type Policy map[string]Rule

var (
	strictImages = []string{"image/jpeg", "image/png", "image/webp"}
	anyImage     = []string{"image/*"}
	pdfOnly      = []string{"application/pdf", "application/x-pdf"}
)

var (
	ProductPolicy = Policy{
		FieldThumbnail: {Allowed: strictImages, MaxFiles: 1},
		FieldImages:    {Allowed: strictImages, MaxFiles: 10},
	}

	BlogPolicy = Policy{
		FieldThumbnail: {Allowed: anyImage, MaxSize: 10 * MB, MaxFiles: 1},
		FieldImages:    {Allowed: anyImage, MaxSize: 10 * MB, MaxFiles: 10},
	}

	ProjectPolicy = Policy{
		FieldThumbnail: {Allowed: anyImage, MaxSize: 10 * MB, MaxFiles: 1},
		FieldImages:    {Allowed: anyImage, MaxSize: 10 * MB, MaxFiles: 10},
	}

	CataloguePolicy = Policy{
		FieldPDF:       {Allowed: pdfOnly, MaxSize: 20 * MB, MaxFiles: 1},
		FieldThumbnail: {Allowed: anyImage, MaxSize: 20 * MB, MaxFiles: 1},
	}
)

// Admit checks every file against the policy and fixes up ContentType with the
// detected value. Nothing is stored here.
func (p Policy) Admit(files []File) ([]File, error) {
	counts := make(map[string]int, len(p))
	admitted := make([]File, 0, len(files))

	for _, f := range files {
		rule, ok := p[f.Field]
		if !ok {
			return nil, models.NewValidationError("Unexpected file field", f.Field)
		}

		counts[f.Field]++
		if rule.MaxFiles > 0 && counts[f.Field] > rule.MaxFiles {
			return nil, models.NewValidationError("Too many files", f.Field)
		}

		f.ContentType = DetectContentType(f)

		if !rule.allows(f.ContentType) {
			return nil, &models.UnsupportedMediaError{
				Field:       f.Field,
				ContentType: f.ContentType,
				Size:        f.Size(),
			}
		}

		if rule.MaxSize > 0 && f.Size() > rule.MaxSize {
			return nil, &models.UnsupportedMediaError{
				Field:       f.Field,
				ContentType: f.ContentType,
				Size:        f.Size(),
				Limit:       rule.MaxSize,
			}
		}

		admitted = append(admitted, f)
	}

	return admitted, nil
}

func (r Rule) allows(contentType string) bool {
	for _, allowed := range r.Allowed {
		if prefix, ok := strings.CutSuffix(allowed, "*"); ok {
			if strings.HasPrefix(contentType, prefix) {
				return true
			}
			continue
		}
		if contentType == allowed {
			return true
		}
	}
	return false
}

// DetectContentType берет заявленный Content-Type части формы,
// а если его нет или он общий - определяет по содержимому.
func DetectContentType(f File) string {
	ct := strings.ToLower(strings.TrimSpace(f.ContentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}

	if ct == "" || ct == "application/octet-stream" {
		ct = mimetype.Detect(f.Data).String()
		if i := strings.Index(ct, ";"); i >= 0 {
			ct = ct[:i]
		}
	}

	return ct
}

// ByField groups admitted files by their form field.
func ByField(files []File) map[string][]File {
	res := make(map[string][]File)
	for _, f := range files {
		res[f.Field] = append(res[f.Field], f)
	}
	return res
}
