package http

import (
	"errors"
	"reflect"

	domainRegistry "crowdlending/internal/domain/registry"
	"crowdlending/pkg/fixedpoint"
	"crowdlending/pkg/id"

	"github.com/go-playground/validator/v10"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// amounts are validated through their decimal text
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		if a, ok := f.Interface().(fixedpoint.Amount); ok {
			return a.String()
		}
		return nil
	}, fixedpoint.Amount{})

	// identities = 32-char lowercase hex
	_ = v.RegisterValidation("hex32", func(fl validator.FieldLevel) bool {
		return id.Valid(fl.Field().String())
	})
	// positive count of base units
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		a, err := fixedpoint.ParseAmount(fl.Field().String())
		return err == nil && !a.IsZero()
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return domainRegistry.Role(fl.Field().String()).Valid()
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "hex32":
			out = append(out, FieldError{Field: field, Message: "must be 32-char lowercase hex"})
		case "amount":
			out = append(out, FieldError{Field: field, Message: "must be a positive integer amount of base units"})
		case "role":
			out = append(out, FieldError{Field: field, Message: "must be one of investor, local_node, community, representative"})
		case "gt":
			out = append(out, FieldError{Field: field, Message: "must be greater than " + e.Param()})
		case "gtfield":
			out = append(out, FieldError{Field: field, Message: "must be after " + e.Param()})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lt":
			out = append(out, FieldError{Field: field, Message: "must be less than " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		case "min":
			out = append(out, FieldError{Field: field, Message: "must have at least " + e.Param() + " entries"})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
