package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// registerExclusive adds a custom validator ensuring two fields are mutually exclusive,
// and reports fields by their flag label.
func registerExclusive(validate *validator.Validate) error {
	if err := validate.RegisterValidation("exclusive", validateExclusive); err != nil {
		return fmt.Errorf("registering exclusive validation: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
		if name == "" || name == "-" {
			return fld.Name
		}

		return name
	})

	return nil
}

// validateExclusive returns false if both string fields are non-empty.
func validateExclusive(fl validator.FieldLevel) bool {
	field := fl.Field()
	other := fl.Parent().FieldByName(fl.Param())

	if !field.IsValid() || !other.IsValid() {
		return true
	}

	if field.Kind() == reflect.String && other.Kind() == reflect.String {
		return field.String() == "" || other.String() == ""
	}

	return true
}

// describe turns validator errors into one readable message per field.
func describe(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := make([]error, 0, len(validationErrors))

	for _, fe := range validationErrors {
		switch fe.Tag() {
		case "exclusive":
			errs = append(errs, fmt.Errorf("%s is mutually exclusive with the %s option", fe.Field(), strings.ToLower(fe.Param())))
		case "oneof":
			errs = append(errs, fmt.Errorf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value()))
		case "min", "gte":
			errs = append(errs, fmt.Errorf("%s must be at least %s", fe.Field(), fe.Param()))
		default:
			errs = append(errs, fmt.Errorf("%s failed the %q rule", fe.Field(), fe.Tag()))
		}
	}

	return errors.Join(errs...)
}
