package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]

		// ignore unexported or explicitly ignored
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Validate runs struct-level validation using go-playground/validator tags.
func Validate(s any) error {
	return validate.Struct(s)
}

// FieldError nombre del campo (según su tag json) y la regla que falló.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

// FieldErrors extrae los fallos por campo; devuelve nil si err no es de validación.
func FieldErrors(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		out = append(out, FieldError{Field: e.Field(), Tag: e.Tag(), Param: e.Param()})
	}
	return out
}

// FormatValidationErrors converts validator.ValidationErrors into a map of
// field name → human-readable message.
func FormatValidationErrors(err error) map[string]string {
	errs := make(map[string]string)
	for _, fe := range FieldErrors(err) {
		errs[fe.Field] = Message(fe)
	}
	return errs
}

// Message mensaje genérico para una regla.
func Message(e FieldError) string {
	switch e.Tag {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Minimum length is %s", e.Param)
	case "max":
		return fmt.Sprintf("Maximum length is %s", e.Param)
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", e.Param)
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", e.Param)
	case "datetime":
		return fmt.Sprintf("Must be a date in %s format", e.Param)
	default:
		return fmt.Sprintf("Validation failed on '%s'", e.Tag)
	}
}
