// Package dateutil formats and validates the French date and time forms used
// on the certificate: dd/mm/yyyy dates and HHhMM times.
package dateutil

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for override validation.
var (
	ErrInvalidDate = errors.New("invalid date, expected dd/mm/yyyy")
	ErrInvalidTime = errors.New("invalid time, expected HHhMM")
)

// Go reference layouts for the certificate formats.
const (
	DateLayout = "02/01/2006"
	TimeLayout = "15h04"
)

// FormatDate renders t as dd/mm/yyyy.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatTime renders t as HHhMM.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// ValidateDate checks a dd/mm/yyyy override value.
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return nil
}

// ValidateTime checks an HHhMM override value.
func ValidateTime(s string) error {
	if _, err := time.Parse(TimeLayout, s); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return nil
}
