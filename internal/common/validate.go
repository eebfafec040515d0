package common

import "strings"

// NormalizeEmail trims and lower-cases an address before it is looked up or
// stored. Client and server both apply it so lookups agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePassword applies the password rules shared by registration and
// profile update.
func ValidatePassword(password, confirm string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len([]rune(password)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
