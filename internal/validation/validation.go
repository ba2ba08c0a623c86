// Package validation wraps go-playground/validator so that field rules and
// request binding errors surface as apperr validation errors with JSON field
// names.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"h2grid/internal/apperr"
)

// New returns a validator that reads `binding` tags, the same tags gin uses.
func New() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	UseJSONNames(v)
	return v
}

// ConfigureGin makes gin's request binding report json field names too.
func ConfigureGin() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		UseJSONNames(v)
	}
}

// UseJSONNames makes validation errors report json field names.
func UseJSONNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// encoding/json has no typed error for DisallowUnknownFields.
const unknownFieldPrefix = "json: unknown field "

// Describe converts binding and validator errors into apperr validation
// errors. Any other error is returned unchanged.
func Describe(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperr.InvalidField(fe.Field(), Message(fe.Tag(), fe.Param()))
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return apperr.Validation("request body is required")
	case errors.As(err, &syntaxErr):
		return apperr.Validation("request body is not valid JSON")
	case errors.As(err, &typeErr):
		return apperr.InvalidField(typeErr.Field, fmt.Sprintf("must be a %s", typeErr.Type))
	case strings.HasPrefix(err.Error(), unknownFieldPrefix):
		field := strings.Trim(strings.TrimPrefix(err.Error(), unknownFieldPrefix), `"`)
		return apperr.InvalidField(field, "is not an allowed field")
	}
	return err
}

// Message renders a validator tag the way clients see it.
func Message(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be at least " + param
	case "lte":
		return "must be at most " + param
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", param)
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + param + " characters"
	case "uuid":
		return "must be a valid id"
	}
	return "failed " + tag + " validation"
}
