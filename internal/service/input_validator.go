package service

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// Password strength messages. Rule order is fixed so the user always sees the
// first violated rule.
const (
	msgPasswordTooShort = "password must be at least 8 characters"
	msgPasswordNoUpper  = "password must contain at least one uppercase letter"
	msgPasswordNoLower  = "password must contain at least one lowercase letter"
	msgPasswordNoDigit  = "password must contain at least one digit"
	msgPasswordStrong   = "password is strong"
)

// InputValidator checks email syntax and password strength.
type InputValidator struct{}

// NewInputValidator creates a new input validator.
func NewInputValidator() *InputValidator {
	return &InputValidator{}
}

// ValidateEmail reports whether s looks like local-part@domain.tld.
func (v *InputValidator) ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// CheckPasswordStrength validates the password rules in order: length,
// uppercase, lowercase, digit. The message names the first violated rule.
func (v *InputValidator) CheckPasswordStrength(s string) (bool, string) {
	// Length counts characters, not bytes, so multi-byte runes weigh one.
	if utf8.RuneCountInString(s) < 8 {
		return false, msgPasswordTooShort
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper {
		return false, msgPasswordNoUpper
	}
	if !hasLower {
		return false, msgPasswordNoLower
	}
	if !hasDigit {
		return false, msgPasswordNoDigit
	}
	return true, msgPasswordStrong
}
