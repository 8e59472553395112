package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// HandleValidationError converts a gin binding error into an ErrorDetail.
// Field-level validator errors carry the offending field; anything else
// maps to a generic malformed-request detail.
func HandleValidationError(err error) *ErrorDetail {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fieldErr := validationErrors[0]

		detail := NewErrorDetail(ErrorCodeValidationFailed, "Validation failed")
		detail = detail.WithField(jsonFieldName(fieldErr))
		detail = detail.WithDetails(validationMessage(fieldErr))
		return detail
	}

	detail := NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format")
	detail = detail.WithDetails(err.Error())
	return detail
}

func jsonFieldName(fieldErr validator.FieldError) string {
	// validator reports the Go field name; lowercase the first rune to
	// approximate the json tag used throughout the DTOs
	name := fieldErr.Field()
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", jsonFieldName(fieldErr))
	case "email":
		return fmt.Sprintf("%s must be a valid email address", jsonFieldName(fieldErr))
	case "min":
		return fmt.Sprintf("%s must be at least %s", jsonFieldName(fieldErr), fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", jsonFieldName(fieldErr), fieldErr.Param())
	default:
		return fmt.Sprintf("%s failed validation rule %q", jsonFieldName(fieldErr), fieldErr.Tag())
	}
}
