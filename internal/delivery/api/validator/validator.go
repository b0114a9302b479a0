// Package validator adapts go-playground/validator to echo.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/errors"

	"github.com/go-playground/validator/v10"
)

// CustomValidator implements echo.Validator. Failures are reported as a
// ValidationError keyed by the JSON field name.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates a validator that names fields after their json tags.
func New() *CustomValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	return &CustomValidator{validate: validate}
}

// Validate checks the struct tags of i.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	fieldErrs, ok := errors.AsType[validator.ValidationErrors](err)
	if !ok {
		return errors.Wrap(err, "failed to validate request")
	}

	validationErr := domainerrors.NewValidationErrors(nil)
	for _, fieldErr := range fieldErrs {
		validationErr.Add(fieldPath(fieldErr), message(fieldErr))
	}

	return validationErr
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

// fieldPath strips the root struct name: "RegistrationRequest.details[0].price" becomes "details[0].price".
func fieldPath(fieldErr validator.FieldError) string {
	namespace := fieldErr.Namespace()
	if _, rest, found := strings.Cut(namespace, "."); found {
		return rest
	}

	return fieldErr.Field()
}

func message(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "uuid", "uuid4":
		return "Must be a valid UUID."
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fieldErr.Value()))
	case "min":
		if fieldErr.Kind() == reflect.Slice || fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s elements.", fieldErr.Param())
		}

		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fieldErr.Param())
	case "max":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fieldErr.Param())
		}

		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fieldErr.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fieldErr.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fieldErr.Param())
	default:
		return fmt.Sprintf("Failed on the %q rule.", fieldErr.Tag())
	}
}
