package config

import (
	"net/url"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators registers custom validation functions
func RegisterCustomValidators(v *validator.Validate) error {
	return v.RegisterValidation("http_url", validateHTTPURL)
}

// validateHTTPURL accepts absolute http or https URLs with a host
func validateHTTPURL(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}
