package serializer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NonFieldErrors collects errors that do not belong to a single field.
const NonFieldErrors = "non_field_errors"

// JSONTagName reports struct fields by their json name so error keys match
// the request body. Register it with validator.Validate.RegisterTagNameFunc.
func JSONTagName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// ValidationErrors maps a binding error onto field -> messages.
func ValidationErrors(err error) map[string][]string {
	out := map[string][]string{}
	if err == nil {
		return out
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out[NonFieldErrors] = []string{err.Error()}
		return out
	}

	for _, fe := range verrs {
		out[fe.Field()] = append(out[fe.Field()], message(fe))
	}
	return out
}

// FieldError builds a single-field error body.
func FieldError(field, msg string) map[string][]string {
	return map[string][]string{field: {msg}}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", valueString(fe.Value()))
	case "uuid", "uuid4":
		return "Must be a valid UUID."
	}
	return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
}

func valueString(v interface{}) string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return ""
	}
	return fmt.Sprint(rv.Interface())
}
