package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DateLayout = "2006-01-02"

var (
	clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ParseClock converts a 24-hour "HH:MM" string into minutes since midnight.
func ParseClock(value string) (int, error) {
	m := clockPattern.FindStringSubmatch(value)
	if m == nil {
		return 0, fmt.Errorf("%q is not a HH:MM time", value)
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	return h*60 + mm, nil
}

// ParseSlotDate checks the YYYY-MM-DD shape and that it names a real calendar day.
func ParseSlotDate(value string) (time.Time, error) {
	if !datePattern.MatchString(value) {
		return time.Time{}, fmt.Errorf("%q is not a YYYY-MM-DD date", value)
	}
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not a calendar date", value)
	}
	return d, nil
}

// IntervalsOverlap reports whether [s1,e1) and [s2,e2) share at least one instant.
func IntervalsOverlap(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// IsValidRef reports whether ref is a 24-hex document identifier.
func IsValidRef(ref string) bool {
	return primitive.IsValidObjectID(ref)
}

// NewRef returns a fresh 24-hex document identifier.
func NewRef() string {
	return primitive.NewObjectID().Hex()
}

// DayBounds returns the first and last instant of t's calendar day in t's location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}
