package utils

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"travel-booking/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// contactEmailPattern is deliberately permissive: local@domain.tld, no RFC parsing.
var contactEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// report json field names instead of Go struct names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return contactEmailPattern.MatchString(fl.Field().String())
	})

	return v
}

// ValidateStruct returns violations in struct declaration order, or nil.
func ValidateStruct(data any) []apperror.FieldViolation {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var violations []apperror.FieldViolation
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range validationErrors {
			violations = append(violations, apperror.FieldViolation{
				Field:   fe.Field(),
				Rule:    fe.Tag(),
				Message: getErrorMessage(fe),
			})
		}
	}

	return violations
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email", "contact_email":
		return "Invalid email format"
	case "min":
		if isNumberKind(err.Kind()) {
			return fmt.Sprintf("Minimum value is %s", err.Param())
		}
		return fmt.Sprintf("Minimum length is %s", err.Param())
	case "max":
		if isNumberKind(err.Kind()) {
			return fmt.Sprintf("Maximum value is %s", err.Param())
		}
		return fmt.Sprintf("Maximum length is %s", err.Param())
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("Must be one of: %s", options)
	case "uuid", "uuid4":
		return "Must be a valid UUID"
	case "required_without":
		return fmt.Sprintf("Required when %s is not provided", toSnake(err.Param()))
	case "excluded_with":
		return fmt.Sprintf("Must not be provided together with %s", toSnake(err.Param()))
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// toSnake turns a Go field name such as CustomTourRequestID into custom_tour_request_id.
func toSnake(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		if upper {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
