package shortener

import (
	"github.com/go-playground/validator/v10"
)

const (
	FieldURL     = "url"
	FieldHostURL = "hostUrl"

	msgURLRequired = "Url is required"
	msgBadURL      = "Bad URL provided"
	msgBadHostURL  = "Error handling host URL"
)

var validate = validator.New()

// Validate checks that both inputs are present and parse as absolute URIs.
// It must run before any code is generated.
func Validate(longURL, hostURL string) error {
	if err := validate.Var(longURL, "required"); err != nil {
		return &ValidationError{Field: FieldURL, Message: msgURLRequired}
	}

	if err := validate.Var(longURL, "url"); err != nil {
		return &ValidationError{Field: FieldURL, Message: msgBadURL}
	}

	if err := validate.Var(hostURL, "required,url"); err != nil {
		return &ValidationError{Field: FieldHostURL, Message: msgBadHostURL}
	}

	return nil
}
