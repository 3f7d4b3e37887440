package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// MaxBodyBytes caps the size of a JSON request body.
const MaxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Optional fields are validated by the value they carry.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		opt, ok := field.Interface().(domain.Optional[string])
		if !ok || opt.Value == nil {
			return nil
		}
		return *opt.Value
	}, domain.Optional[string]{})

	return v
}

// DecodeJSON decodes JSON from request body into the given value. Decoding
// failures are returned as validation errors.
func DecodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes)).Decode(v)
	if err == nil {
		return nil
	}

	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		return domain.NewValidationError([]string{fieldErr.Message})
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return domain.NewValidationError([]string{fmt.Sprintf("Invalid value for %s", typeErr.Field)})
	}
	return domain.NewValidationError([]string{"Invalid JSON body"})
}

// Validate checks v against its validate tags and returns a validation
// error listing every failed rule, or nil.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewValidationError([]string{err.Error()})
	}

	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, describe(fe))
	}
	return domain.NewValidationError(details)
}

// DecodeAndValidate decodes the body into v and validates it.
func DecodeAndValidate(r *http.Request, v any) error {
	if err := DecodeJSON(r, v); err != nil {
		return err
	}
	return Validate(v)
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("Invalid %s", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
