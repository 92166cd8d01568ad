package entities

import (
	"fmt"
	"regexp"
	"time"
)

// DateLayout is the interchange format for user-entered dates (DD/MM/YYYY).
const DateLayout = "02/01/2006"

var emailPattern = regexp.MustCompile(
	`^[_A-Za-z0-9+-]+(\.[_A-Za-z0-9-]+)*@[A-Za-z0-9-]+(\.[A-Za-z0-9]+)*(\.[A-Za-z]{2,})$`)

// ValidateEmail checks an address against the accepted email shape:
// local part of letters/digits/_-+. followed by dotted domain labels and a
// top-level label of at least two letters.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: %q is not a valid e-mail address", ErrValidation, email)
	}
	return nil
}

// ParseDate parses a DD/MM/YYYY date. Malformed input is rejected, never
// silently defaulted.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a valid DD/MM/YYYY date", ErrValidation, value)
	}
	return parsed, nil
}

// FormatDate renders a date in the same DD/MM/YYYY format ParseDate accepts.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
