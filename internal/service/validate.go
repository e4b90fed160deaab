package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_\x{4e00}-\x{9fa5}]+$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	passwordClasses = []*regexp.Regexp{
		regexp.MustCompile(`[a-z]`),
		regexp.MustCompile(`[A-Z]`),
		regexp.MustCompile(`[0-9]`),
		regexp.MustCompile(`[^a-zA-Z0-9]`),
	}
)

func validateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	switch {
	case n < 3:
		return fmt.Errorf("%w: username must be at least 3 characters", ErrValidation)
	case n > 20:
		return fmt.Errorf("%w: username must be at most 20 characters", ErrValidation)
	case !usernamePattern.MatchString(username):
		return fmt.Errorf("%w: username may only contain letters, digits, underscores and Chinese characters", ErrValidation)
	}
	return nil
}

const maxPasswordBytes = 72

func validatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	if n > 50 {
		return fmt.Errorf("%w: password must be at most 50 characters", ErrValidation)
	}
	// bcrypt hashes at most 72 bytes; multi-byte characters reach that first.
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, maxPasswordBytes)
	}
	classes := 0
	for _, re := range passwordClasses {
		if re.MatchString(password) {
			classes++
		}
	}
	if classes < 2 {
		return fmt.Errorf("%w: password must mix at least two of lower case, upper case, digits and symbols", ErrValidation)
	}
	return nil
}

// normalizeEmail lower-cases and validates an optional address. The empty
// string is accepted and means "no email".
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", nil
	}
	if !emailPattern.MatchString(email) {
		return "", fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	return email, nil
}
