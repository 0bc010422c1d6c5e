package identity

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrEmptyField indicates a required field is empty or whitespace-only.
	ErrEmptyField = errors.New("value cannot be empty")

	// ErrInvalidEmail indicates the email does not look like local@domain.tld.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrFieldSeparator indicates a field contains the store's field separator.
	ErrFieldSeparator = errors.New("value cannot contain ':'")
)

// emailPattern accepts exactly one '@', a domain with at least one '.', and a
// top-level segment of two or more letters.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[A-Za-z]{2,}$`)

// ValidEmail reports whether s has the local@domain.tld shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidateText checks a free-text field (label or full name).
func ValidateText(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptyField
	}
	if strings.Contains(s, FieldSeparator) {
		return ErrFieldSeparator
	}
	return nil
}

// ValidateEmail checks an email field.
func ValidateEmail(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptyField
	}
	if strings.Contains(s, FieldSeparator) {
		return ErrFieldSeparator
	}
	if !ValidEmail(s) {
		return ErrInvalidEmail
	}
	return nil
}

// Validate checks every field of a record except the ordinal, which the store
// assigns.
func (r Record) Validate() error {
	if err := ValidateText(r.Label); err != nil {
		return err
	}
	if err := ValidateText(r.FullName); err != nil {
		return err
	}
	return ValidateEmail(r.Email)
}
