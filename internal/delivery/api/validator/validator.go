// Package validator adapts go-playground/validator to echo.
package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// EchoValidator implements echo.Validator.
type EchoValidator struct {
	validate *validator.Validate
}

// New builds a validator that reports json field names and understands decimal amounts.
func New() *EchoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	// Amounts are validated with the numeric tags (gt, gte) on their float value.
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	return &EchoValidator{validate: v}
}

// Validate checks i and folds every field error into one readable message.
func (ev *EchoValidator) Validate(i any) error {
	err := ev.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.WithStack(err)
	}

	return &ValidationError{Fields: fieldErrs}
}

// ValidationError lists failed fields in request order.
type ValidationError struct {
	Fields validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		messages = append(messages, describe(fe))
	}

	return strings.Join(messages, "; ")
}

// FieldMessages maps each failing field path to its message.
func (e *ValidationError) FieldMessages() map[string]string {
	fields := make(map[string]string, len(e.Fields))
	for _, fe := range e.Fields {
		fields[fieldPath(fe)] = describe(fe)
	}

	return fields
}

func describe(fe validator.FieldError) string {
	field := fieldPath(fe)

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "len":
		return field + " must be exactly " + fe.Param() + " characters"
	case "numeric":
		return field + " must contain digits only"
	case "min":
		if fe.Kind() == reflect.Slice {
			return field + " must contain at least " + fe.Param() + " item(s)"
		}

		return field + " must be at least " + fe.Param()
	case "max":
		return field + " must be at most " + fe.Param()
	case "oneof", "eq":
		return field + " must be one of [" + fe.Param() + "]"
	case "gt":
		return field + " must be greater than " + fe.Param()
	case "gte":
		return field + " must be at least " + fe.Param()
	case "uuid", "uuid4":
		return field + " must be a valid id"
	default:
		return field + " is invalid"
	}
}

// fieldPath drops the root struct name: "createOrderRequest.items[0].price" -> "items[0].price".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}

	return ns
}

func decimalValue(field reflect.Value) any {
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}

	return d.InexactFloat64()
}
