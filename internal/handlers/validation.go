package handlers

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/getmentor/persons-api/internal/models"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var setupValidatorOnce sync.Once

// SetupValidator registers custom tags on gin's validator and makes field
// errors report json/form/uri names instead of Go field names. Safe to call
// more than once.
func SetupValidator() {
	setupValidatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("gin binding validator is not go-playground/validator")
		}

		v.RegisterTagNameFunc(fieldName)

		if err := v.RegisterValidation("haircolor", validateHairColor); err != nil {
			panic(err)
		}
		if err := v.RegisterValidation("personid", validatePersonID); err != nil {
			panic(err)
		}
	})
}

// fieldName picks the first wire name of a struct field
func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}

func validateHairColor(fl validator.FieldLevel) bool {
	return models.HairColor(fl.Field().String()).IsValid()
}

func validatePersonID(fl validator.FieldLevel) bool {
	return models.PersonID(fl.Field().String()).IsValid()
}

// ParseValidationErrors converts validator errors to user-friendly format
func ParseValidationErrors(err error) []ValidationError {
	var errs []ValidationError

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			errs = append(errs, ValidationError{
				Field:   fieldError.Field(),
				Message: getErrorMessage(fieldError),
			})
		}
	}

	return errs
}

func getErrorMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		if isString {
			return fe.Field() + " must be at least " + fe.Param() + " characters"
		}
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		if isString {
			return fe.Field() + " must not exceed " + fe.Param() + " characters"
		}
		return fe.Field() + " must not exceed " + fe.Param()
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	case "lte":
		return fe.Field() + " must be at most " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "haircolor":
		return fe.Field() + " must be one of: " + hairColorList()
	case "personid":
		return fe.Field() + " must be a positive integer"
	default:
		return fe.Field() + " is invalid"
	}
}

func hairColorList() string {
	names := make([]string, len(models.HairColors))
	for i, c := range models.HairColors {
		names[i] = string(c)
	}
	return strings.Join(names, " ")
}
