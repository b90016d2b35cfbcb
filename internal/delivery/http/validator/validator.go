// Package validator adapts go-playground/validator to echo's Validator
// interface and to the application's validation error shape.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	domainerrors "taskboard/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

type echoValidator struct {
	validate *validator.Validate
}

// New builds the request validator used by the echo server.
func New() *echoValidator {
	validate := validator.New()

	// Report fields under their wire names so error bodies match the JSON
	// the client actually sent.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return &echoValidator{validate: validate}
}

// Validate implements echo.Validator. Tag failures are translated into a
// per-field message map.
func (v *echoValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError: the handler passed something unvalidatable.
		return err
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields[fieldErr.Field()] = messageFor(fieldErr)
	}

	return domainerrors.NewValidationError(fields)
}

func messageFor(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fieldErr.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fieldErr.Param())
	default:
		return "This field is invalid."
	}
}
