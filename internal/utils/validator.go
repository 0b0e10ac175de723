// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("slug", validateSlug)
	validate.RegisterValidation("co_phone", validateColombianPhone)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateSlug(fl validator.FieldLevel) bool {
	slug := fl.Field().String()

	// A valid slug is already in normalized form: lowercase, digits, single
	// hyphens, no leading/trailing hyphen.
	if len(slug) < 2 || len(slug) > 100 {
		return false
	}

	matched, _ := regexp.MatchString(`^[a-z0-9]+(-[a-z0-9]+)*$`, slug)
	return matched
}

func validateColombianPhone(fl validator.FieldLevel) bool {
	phone := fl.Field().String()

	// Numbers arrive with optional punctuation ("317 735 2000", "317-7352000").
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	// 10 digits for a national mobile, 12 with the 57 country code.
	if len(digits) == 10 {
		return true
	}
	return len(digits) == 12 && strings.HasPrefix(digits, "57")
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "slug":
		return "Slug must contain only lowercase letters, numbers, and single hyphens"
	case "co_phone":
		return "Phone must be a 10-digit Colombian number, optionally with the 57 country code"
	default:
		return e.Field() + " is invalid"
	}
}
