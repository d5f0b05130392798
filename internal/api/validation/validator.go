package validation

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/denischpt/portfolio/internal/i18n"
	"github.com/denischpt/portfolio/internal/models"

	"github.com/go-playground/validator/v10"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// contactRules declares the checks in the order they are reported. The
// validator walks fields in declaration order, so the first error returned
// is always the first failing rule.
type contactRules struct {
	Name    string `validate:"trimmed_min=2"`
	Email   string `validate:"required,contact_email"`
	Message string `validate:"trimmed_min=5"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		RegisterValidators(validate)
	})
	return validate
}

// RegisterValidators registers the contact form validators
func RegisterValidators(v *validator.Validate) {
	v.RegisterValidation("trimmed_min", validateTrimmedMin)
	v.RegisterValidation("contact_email", validateEmail)
}

// validateTrimmedMin checks the character count of the trimmed field
func validateTrimmedMin(fl validator.FieldLevel) bool {
	min, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= min
}

// validateEmail checks that the email has a local@domain.tld shape
func validateEmail(fl validator.FieldLevel) bool {
	return IsValidEmail(fl.Field().String())
}

// IsValidEmail reports whether email has a local@domain.tld shape.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Error is the first failed rule of a submission. Its message is an i18n
// key so that each call site can present it in the caller's language.
type Error struct {
	Field models.Field
	Key   i18n.Key
}

func (e *Error) Error() string {
	return "invalid " + string(e.Field) + ": " + string(e.Key)
}

var fieldKeys = map[string]*Error{
	"Name":    {Field: models.FieldName, Key: i18n.KeyNameTooShort},
	"Email":   {Field: models.FieldEmail, Key: i18n.KeyInvalidEmail},
	"Message": {Field: models.FieldMessage, Key: i18n.KeyMessageTooShort},
}

// Validate runs the contact form rules against sub and returns the first
// failure, or nil when the submission is acceptable. The same function
// guards the form before sending and the relay on receipt.
func Validate(sub models.ContactSubmission) *Error {
	err := instance().Struct(contactRules{
		Name:    sub.Name,
		Email:   sub.Email,
		Message: sub.Message,
	})
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		if verr, ok := fieldKeys[fieldErrors[0].Field()]; ok {
			return &Error{Field: verr.Field, Key: verr.Key}
		}
	}
	// Only reachable if the rule set itself is broken.
	return &Error{Field: models.FieldName, Key: i18n.KeyNameTooShort}
}

// FieldError describes one failed rule for diagnostics
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// FormatValidationError flattens validator errors for logging
func FormatValidationError(err error) []FieldError {
	var out []FieldError
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		for _, e := range fieldErrors {
			out = append(out, FieldError{
				Field: e.Field(),
				Tag:   e.Tag(),
				Value: e.Param(),
			})
		}
	}
	return out
}
