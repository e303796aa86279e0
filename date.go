package kmlog

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date with no time-of-day component
type Date struct {
	t   time.Time
	set bool
}

// DateLayout is the canonical form of a Date, both for input and storage
const DateLayout = "2006-01-02"

// MaxKilometer bounds the magnitude of a reading so that differences
// between readings stay finite
const MaxKilometer = 1e15

const secondsPerDay = 24 * 60 * 60

var (
	errEmptyDate    = errors.New("date is required")
	errDateFormat   = errors.New("date must be formatted as YYYY-MM-DD")
	errEmptyKm      = errors.New("kilometer is required")
	errKmNotANumber = errors.New("kilometer must be a number")
	errKmNotFinite  = errors.New("kilometer must be a finite number")
	errKmRange      = errors.New("kilometer is out of range")
	acceptedLayouts = []string{DateLayout, time.RFC3339Nano}
)

// NewDate returns the Date for the given year, month and day. Out of range
// values are normalized the way time.Date normalizes them
func NewDate(year int, month time.Month, day int) Date {
	return Date{
		t:   time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		set: true,
	}
}

// ParseDate parses a YYYY-MM-DD string. RFC 3339 timestamps are accepted as
// well and truncated to the date they name in their own offset
func ParseDate(str string) (Date, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return Date{}, errEmptyDate
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, str); err == nil {
			y, m, d := t.Date()
			return NewDate(y, m, d), nil
		}
	}
	return Date{}, errDateFormat
}

// ParseKilometer parses an integral or real-valued reading
func ParseKilometer(str string) (float64, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return 0, errEmptyKm
	}
	km, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, errKmNotANumber
	}
	return checkKilometer(km)
}

func checkKilometer(km float64) (float64, error) {
	if math.IsNaN(km) || math.IsInf(km, 0) {
		return 0, errKmNotFinite
	}
	if math.Abs(km) > MaxKilometer {
		return 0, errKmRange
	}
	return km, nil
}

// IsZero reports whether the Date was never set. 0001-01-01 is a set Date
func (d Date) IsZero() bool {
	return !d.set
}

// Time returns midnight UTC of the Date
func (d Date) Time() time.Time {
	return d.t
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to, or
// after other
func (d Date) Compare(other Date) int {
	return d.t.Compare(other.t)
}

// Before reports whether d falls before other
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// DaysSince returns the number of whole days from other to d, negative when
// other is later
func (d Date) DaysSince(other Date) int {
	return int((d.t.Unix() - other.t.Unix()) / secondsPerDay)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// MarshalText implements encoding.TextMarshaler
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Date) UnmarshalText(text []byte) error {
	res, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = res
	return nil
}
