package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"todo-service/internal/auth"
	"todo-service/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// max=72 counts runes; bcrypt rejects anything over 72 bytes.
	if err := v.RegisterValidation("passwordbytes", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= auth.MaxPasswordBytes
	}); err != nil {
		panic(err)
	}
	return v
}

func validateInput(in any) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}
