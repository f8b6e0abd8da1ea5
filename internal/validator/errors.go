package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single field validation failure
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule"`
}

// ValidationErrors is a collection of validation failures
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(msgs, "; ")
}

// HasErrors reports whether any validation failure is present
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// ToValidationErrors converts go-playground validator errors into our format
func ToValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var errors ValidationErrors

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{
			Field:   "request",
			Message: err.Error(),
			Rule:    "invalid",
		}}
	}

	for _, fieldError := range validationErrors {
		errors = append(errors, ValidationError{
			Field:   toSnakeCase(fieldError.Field()),
			Message: getErrorMessage(fieldError),
			Value:   fieldError.Value(),
			Rule:    fieldError.Tag(),
		})
	}

	return errors
}

// getErrorMessage returns a human-readable message for a field error
func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "course_title":
		return "must be between 1 and 200 characters"
	case "course_description":
		return "must be at most 2000 characters"
	case "course_level":
		return "must be one of: Beginner, Intermediate, Advanced"
	case "user_role":
		return "must be one of: student, professor"
	default:
		return fmt.Sprintf("failed validation rule %s", fe.Tag())
	}
}

func toSnakeCase(s string) string {
	var b strings.Builder
	prevUpper := false
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			// Runs of capitals like "ID" stay one word
			if i > 0 && !prevUpper {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			prevUpper = true
		} else {
			b.WriteRune(r)
			prevUpper = false
		}
	}
	return b.String()
}
