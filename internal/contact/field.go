// Package contact holds the in-memory contact directory: validated field
// values, contact records, and the upcoming-birthdays query.
package contact

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the textual form of every date accepted or printed by this package.
const DateLayout = "02.01.2006"

// Sentinel errors for caller-checkable conditions.
var (
	ErrInvalid  = errors.New("invalid value")
	ErrNotFound = errors.New("not found")
)

// ValidationError reports a raw value rejected by a field constructor.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrInvalid) true for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// Name is a contact's display name and directory key.
type Name struct {
	value string
}

// NewName wraps raw unchanged. Empty or whitespace-only names are rejected.
func NewName(raw string) (Name, error) {
	if strings.TrimSpace(raw) == "" {
		return Name{}, &ValidationError{Field: "name", Value: raw, Reason: "name cannot be empty"}
	}
	return Name{value: raw}, nil
}

func (n Name) String() string {
	return n.value
}

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Phone is a phone number of exactly ten decimal digits.
type Phone struct {
	value string
}

// NewPhone validates raw against the ten-digit format.
//
// Separators, country codes and surrounding spaces are all rejected:
//
//	NewPhone("0501234567")   // ok
//	NewPhone("050-123-4567") // ErrInvalid
func NewPhone(raw string) (Phone, error) {
	if !phonePattern.MatchString(raw) {
		return Phone{}, &ValidationError{Field: "phone", Value: raw, Reason: "invalid phone format"}
	}
	return Phone{value: raw}, nil
}

func (p Phone) String() string {
	return p.value
}

// Equal reports whether p and other hold the same digits.
func (p Phone) Equal(other Phone) bool {
	return p.value == other.value
}

var birthdayPattern = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)

// Birthday is a calendar date, held as UTC midnight.
type Birthday struct {
	date time.Time
}

// NewBirthday parses raw in DD.MM.YYYY form. Dates that do not exist on the
// calendar, such as 31.02.2024, are rejected.
func NewBirthday(raw string) (Birthday, error) {
	invalid := &ValidationError{Field: "birthday", Value: raw, Reason: "invalid date format or nonexistent date"}
	if !birthdayPattern.MatchString(raw) {
		return Birthday{}, invalid
	}
	t, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		return Birthday{}, invalid
	}
	return Birthday{date: t}, nil
}

// Date returns the birthday as UTC midnight.
func (b Birthday) Date() time.Time {
	return b.date
}

func (b Birthday) Year() int         { return b.date.Year() }
func (b Birthday) Month() time.Month { return b.date.Month() }
func (b Birthday) Day() int          { return b.date.Day() }

func (b Birthday) String() string {
	return b.date.Format(DateLayout)
}

// CalendarDate drops the clock part of t, keeping the year, month and day
// as seen in t's own location.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
