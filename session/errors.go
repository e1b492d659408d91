package session

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

var (
	// ErrInvalidEmail is returned when a registration email has no "@".
	ErrInvalidEmail = errors.New("email address is not valid")

	// ErrPasswordTooShort is returned when a password is shorter than
	// MinPasswordLength.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")

	// ErrEmptyCredentials is returned when a login draft is missing the
	// email or password.
	ErrEmptyCredentials = errors.New("email and password are required")
)

// ValidateRegistration checks a registration draft before any network
// call is made.
func ValidateRegistration(draft Draft) error {
	if !strings.Contains(draft.Email, "@") {
		return ErrInvalidEmail
	}
	if utf8.RuneCountInString(draft.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateLogin checks a login draft before any network call is made.
func ValidateLogin(draft Draft) error {
	if draft.Email == "" || draft.Password == "" {
		return ErrEmptyCredentials
	}
	return nil
}
