package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// Moroccan mobile numbers: 06 followed by eight digits.
var moroccanPhoneRegex = regexp.MustCompile(`^06\d{8}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("ma_phone", func(fl validator.FieldLevel) bool {
		return moroccanPhoneRegex.MatchString(fl.Field().String())
	})
	return v
}

// Struct validates a tagged request payload and converts failures into a
// client-facing validation error with per-field details.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}

	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = "failed on rule: " + fe.Tag()
	}
	return apperrors.NewValidationError("Request validation failed", details)
}

// Identifier reports whether a login identifier is a plausible email address
// or Moroccan phone number.
func Identifier(identifier string) bool {
	if moroccanPhoneRegex.MatchString(identifier) {
		return true
	}
	return validate.Var(identifier, "email") == nil
}
