package dto

import (
	"errors"

	"architylez/internal/domain/models"
	"architylez/internal/lib/validate"
)

const MsgContactFieldsRequired = "All fields are required"

type ContactFormInput struct {
	Name    string `json:"name" form:"name" validate:"required"`
	Email   string `json:"email" form:"email" validate:"required"`
	Phone   string `json:"phone,omitempty" form:"phone"`
	Service string `json:"service,omitempty" form:"service"`
	Message string `json:"message" form:"message" validate:"required"`
}

func (in ContactFormInput) ToDomain() models.ContactForm {
	c := models.ContactForm{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Service: in.Service,
		Message: in.Message,
	}
	c.Normalize()
	return c
}

// Validate проверяет заявку после нормализации и отдает одно сообщение на
// любое пропущенное поле.
func (in ContactFormInput) Validate() error {
	c := in.ToDomain()

	err := validate.Struct(ContactFormInput{Name: c.Name, Email: c.Email, Message: c.Message})
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return models.NewValidationError(MsgContactFieldsRequired, verr.Fields...)
	}
	return err
}
