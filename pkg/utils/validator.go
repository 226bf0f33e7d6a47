package utils

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/turtacn/securepay/pkg/errors"
)

const (
	// DomainRequiredMessage is returned when no domain was supplied
	DomainRequiredMessage = "Please enter a domain name"

	// DomainInvalidMessage is returned when the domain does not match domainPattern
	DomainInvalidMessage = "Please enter a valid domain name (e.g., example.com)"
)

var domainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{1,61}[a-zA-Z0-9]\.[a-zA-Z]{2,}$`)

var defaultValidator *validator.Validate

func init() {
	defaultValidator = validator.New()
	defaultValidator.RegisterTagNameFunc(jsonTagName)
	// Register custom validation functions
	_ = defaultValidator.RegisterValidation("domain", validateDomain)
}

// ValidateStruct validates a struct using the default validator.
// Field errors are keyed by the struct's json names.
func ValidateStruct(s interface{}) errors.ServiceError {
	err := defaultValidator.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.ErrInvalidRequest(err.Error())
	}
	details := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		details[fe.Field()] = formatValidationError(fe)
	}
	return errors.ErrValidation(details)
}

// ValidateDomain checks a landing-page domain entry and returns the
// user-facing message on failure.
func ValidateDomain(domain string) errors.ServiceError {
	if domain == "" {
		return errors.ErrInvalidDomain(DomainRequiredMessage, domain)
	}
	if defaultValidator.Var(domain, "domain") != nil {
		return errors.ErrInvalidDomain(DomainInvalidMessage, domain)
	}
	return nil
}

// IsValidDomain reports whether s matches the accepted domain shape
func IsValidDomain(s string) bool {
	return domainPattern.MatchString(s)
}

func validateDomain(fl validator.FieldLevel) bool {
	return IsValidDomain(fl.Field().String())
}

// formatValidationError creates a user-friendly error message for a validation error.
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return humanizeField(fe.Field()) + " is required"
	case "email":
		return humanizeField(fe.Field()) + " must be a valid email address"
	case "domain":
		return DomainInvalidMessage
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' tag", fe.Tag())
	}
}

// humanizeField turns "business_name" into "Business name"
func humanizeField(name string) string {
	if name == "" {
		return "Field"
	}
	name = strings.ReplaceAll(name, "_", " ")
	return strings.ToUpper(name[:1]) + name[1:]
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return ToSnakeCase(fld.Name)
	}
	return name
}
