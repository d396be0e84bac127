package dto

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/repair-service/pkg/util"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report field names as their json tags so error payloads match the wire.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a request payload and collects every violation as a
// per-field error rather than stopping at the first one.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewInternalError(err)
	}

	fields := make([]apperrors.FieldError, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, apperrors.FieldError{
			Field:   fieldPath(fieldErr.Namespace()),
			Message: fieldErr.Field() + "_is_" + messageFor(fieldErr.Tag()),
		})
	}
	return apperrors.NewValidationError(fields...)
}

// fieldPath strips the root struct name from the namespace, keeping nested
// paths like customer.name.
func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func messageFor(tag string) string {
	switch tag {
	case "required":
		return "required"
	case "email":
		return "invalid"
	default:
		return "invalid"
	}
}
