package common

import (
	"fmt"
	"time"
)

// naive covers ISO 8601 timestamps written without a timezone.
const naive = "2006-01-02T15:04:05"

// DateTime is an ISO 8601 timestamp. The timezone component is optional in
// COLLADA documents; a timestamp written without one is preserved as naive
// rather than assumed to be UTC.
type DateTime struct {
	Time  time.Time
	Naive bool
}

// ParseDateTime decodes an ISO 8601 timestamp, with or without a timezone.
func ParseDateTime(s string) (DateTime, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateTime{Time: t}, nil
	}
	if t, err := time.Parse(naive, s); err == nil {
		return DateTime{Time: t, Naive: true}, nil
	}
	return DateTime{}, fmt.Errorf("invalid ISO 8601 timestamp %q", s)
}

// String formats the timestamp the way it was declared.
func (d DateTime) String() string {
	if d.Naive {
		return d.Time.Format(naive)
	}
	return d.Time.Format(time.RFC3339)
}

// Equal reports whether two timestamps denote the same instant with the
// same timezone presence.
func (d DateTime) Equal(o DateTime) bool {
	return d.Naive == o.Naive && d.Time.Equal(o.Time)
}
