package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"freight/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RequestValidator checks request bodies against their `validate` tags.
// It is installed as echo's Validator so handlers call c.Validate.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Let numeric tags (gte, gt) compare decimals.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	return &RequestValidator{validate: v}
}

// Validate implements echo.Validator. Every failed field is listed in one
// ValueIsInvalidError.
func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var b strings.Builder
	for idx, fe := range verrs {
		if idx > 0 {
			b.WriteString("; ")
		}
		b.WriteString(fieldError(fe))
	}
	return errs.NewValueIsInvalidErrorWithCause("request", errors.New(b.String()))
}

func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must be %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "alpha":
		return fmt.Sprintf("%s must contain alphabetic characters only", fe.Field())
	default:
		return fmt.Sprintf("%s failed on %s validation", fe.Field(), fe.Tag())
	}
}
