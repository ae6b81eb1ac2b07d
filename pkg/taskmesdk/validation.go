package taskmesdk

import (
	"strings"
	"unicode"
)

// Password rule messages, in the order they are checked.
const (
	PasswordTooShort  = "Password must be at least 8 characters long"
	PasswordTooLong   = "Password must be at most 128 characters long"
	PasswordNoUpper   = "Password must contain at least one uppercase letter"
	PasswordNoLower   = "Password must contain at least one lowercase letter"
	PasswordNoDigit   = "Password must contain at least one digit"
	UsernameLength    = "Username must be between 3 and 50 characters"
	EmailInvalid      = "Invalid email address"
	maxEmailLength    = 255
	minUsernameLength = 3
	maxUsernameLength = 50
)

// RegisterFieldOrder is the order Validate results should be reported in.
var RegisterFieldOrder = []string{"username", "email", "password"}

// Validate checks the registration fields. Returns a map of field names to
// error messages, or nil if all fields are valid.
func (r RegisterRequest) Validate() map[string]string {
	errs := make(map[string]string)

	if n := len([]rune(strings.TrimSpace(r.Username))); n < minUsernameLength || n > maxUsernameLength {
		errs["username"] = UsernameLength
	}
	if !ValidEmail(r.Email) {
		errs["email"] = EmailInvalid
	}
	if msg := CheckPassword(r.Password); msg != "" {
		errs["password"] = msg
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// CheckPassword returns the first failed complexity rule, or "".
func CheckPassword(pw string) string {
	n := len([]rune(pw))
	switch {
	case n < 8:
		return PasswordTooShort
	case n > 128:
		return PasswordTooLong
	}

	var upper, lower, digit bool
	for _, c := range pw {
		switch {
		case unicode.IsUpper(c):
			upper = true
		case unicode.IsLower(c):
			lower = true
		case unicode.IsDigit(c):
			digit = true
		}
	}

	switch {
	case !upper:
		return PasswordNoUpper
	case !lower:
		return PasswordNoLower
	case !digit:
		return PasswordNoDigit
	}
	return ""
}

// ValidEmail is a shape check only: one @ with something on both sides and
// no whitespace.
func ValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" || len(email) > maxEmailLength || strings.ContainsAny(email, " \t\r\n") {
		return false
	}
	local, domain, ok := strings.Cut(email, "@")
	return ok && local != "" && domain != "" && !strings.Contains(domain, "@")
}
