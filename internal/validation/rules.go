// Package validation provides custom validation rules for the application.
package validation

import (
	"encoding/base64"
	"net/url"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/privacycore/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string contains non-whitespace content.
var NotBlank = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_not_blank_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_not_blank", "must not be blank")
	}
	return nil
})

// Base64 validates that a string is valid base64-encoded data.
var Base64 = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_base64_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	_, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return validation.NewError("validation_base64", "must be valid base64-encoded data")
	}
	return nil
})

// secureEndpointSchemes are the schemes accepted by SecureEndpoint.
var secureEndpointSchemes = map[string]struct{}{
	"https": {},
	"wss":   {},
	"mqtts": {},
}

// SecureEndpoint validates that a string is a URL with a secure scheme.
var SecureEndpoint = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_secure_endpoint_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	parsed, err := url.Parse(s)
	if err != nil || parsed.Host == "" {
		return validation.NewError("validation_secure_endpoint", "must be a valid URL")
	}
	if _, ok := secureEndpointSchemes[strings.ToLower(parsed.Scheme)]; !ok {
		return validation.NewError(
			"validation_secure_endpoint_scheme",
			"must use the https, wss, or mqtts scheme",
		)
	}
	return nil
})
