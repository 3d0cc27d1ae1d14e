package billboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"ecogenius/internal/services"
)

// ErrPostNotFound is returned for an unknown post id.
var ErrPostNotFound = fmt.Errorf("%w: post", services.ErrNotFound)

// CooldownMessage is shown when a submission arrives too soon.
const CooldownMessage = "Please wait a few seconds before posting again."

// ErrCooldown rejects a submission made within the cooldown window.
var ErrCooldown = fmt.Errorf("%w: %s", services.ErrValidation, CooldownMessage)

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Fields []FieldProblem
}

// FieldProblem is one failed field.
type FieldProblem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "invalid submission: " + strings.Join(msgs, "; ")
}

// Unwrap marks validation errors for HTTP status mapping.
func (e *ValidationError) Unwrap() error { return services.ErrValidation }

func newValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", services.ErrValidation, err)
	}
	out := &ValidationError{Fields: make([]FieldProblem, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, FieldProblem{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	case "len":
		return fe.Field() + " must be " + fe.Param() + " characters"
	case "numeric":
		return fe.Field() + " must contain only digits"
	case "url":
		return fe.Field() + " must be a valid URL"
	case "oneof":
		return fe.Field() + " must be one of " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
