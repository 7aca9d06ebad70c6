package validate

import (
	"errors"
	"reflect"
	"slices"
	"strings"
	"sync"

	"architylez/internal/domain/models"

	"github.com/go-playground/validator/v10"
)

const (
	MsgRequired = "Please fill all required fields"
	MsgInvalid  = "Invalid field value"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator общий экземпляр: в ошибках используются json-имена полей.
func Validator() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		_ = instance.RegisterValidation("product_category", oneOf(models.ProductCategories))
		_ = instance.RegisterValidation("catalogue_category", oneOf(models.CatalogueCategories))
	})
	return instance
}

func oneOf(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(allowed, fl.Field().String())
	}
}

// Struct validates v and converts validator errors into *models.ValidationError.
// Missing required fields win over other failures.
func Struct(v interface{}) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var missing, invalid []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "required_with", "required_without":
			missing = append(missing, fe.Field())
		default:
			invalid = append(invalid, fe.Field())
		}
	}

	if len(missing) > 0 {
		return models.NewValidationError(MsgRequired, missing...)
	}

	return models.NewValidationError(MsgInvalid, invalid...)
}
