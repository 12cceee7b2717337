package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json tag names so field errors match the wire payload.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	if s == nil {
		return nil
	}

	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return fmt.Errorf("validator: expected a struct, got %T", s)
	}

	return validate.Struct(s)
}

// FieldMessages converts a validation error into a field-keyed map of
// human-readable messages, the shape the response builder renders
// inline. A nil or non-validation error yields nil.
func FieldMessages(err error) map[string]string {
	var ve validator.ValidationErrors
	if err == nil || !asValidationErrors(err, &ve) {
		return nil
	}

	messages := make(map[string]string, len(ve))
	for _, e := range ve {
		messages[e.Field()] = messageFor(e)
	}
	return messages
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors)
	if ok {
		*target = ve
	}
	return ok
}

func messageFor(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Please enter a valid email address."
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters.", e.Param())
		}
		return fmt.Sprintf("Must be at least %s.", e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters.", e.Param())
		}
		return fmt.Sprintf("Must be at most %s.", e.Param())
	case "url":
		return "Please enter a valid URL."
	}
	return "This value is invalid."
}
