// Package validation contains input validation rules shared by handlers and services.
package validation

import (
	"errors"
	"regexp"
	"time"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks that the address is syntactically valid.
func ValidateEmail(email string) error {
	if email == "" || !emailRegex.MatchString(email) {
		return errors.New("Please include a valid email")
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("Please enter a password with 6 or more characters")
	}
	return nil
}

// ValidateEntryDates checks the from/to/current combination on an
// experience or education entry. An absent "to" is how "currently there" is
// expressed, so current=true together with an end date is contradictory.
func ValidateEntryDates(from time.Time, to *time.Time, current bool) error {
	if from.IsZero() {
		return errors.New("From date is required")
	}
	if current && to != nil {
		return errors.New("Current entries cannot have an end date")
	}
	if to != nil && to.Before(from) {
		return errors.New("End date cannot be before start date")
	}
	return nil
}
