package activity

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/pkg/errors"
)

// FormatClock writes HH:MM, or HH:MM:SS when seconds are set.
func FormatClock(t civil.Time) string {
	if t.Second == 0 {
		return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
	}
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// ParseClock reads HH:MM or HH:MM:SS. Fractions of a second are rejected.
func ParseClock(s string) (civil.Time, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, ":") == 1 {
		s += ":00"
	}
	t, err := civil.ParseTime(s)
	if err != nil || t.Nanosecond != 0 {
		return civil.Time{}, errors.Errorf("invalid time %q", s)
	}
	return t, nil
}

func ParseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, errors.Errorf("invalid date %q", s)
	}
	return d, nil
}

func secondsOfDay(t civil.Time) int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// WeekOf returns the Monday and Sunday of the ISO week containing d.
func WeekOf(d civil.Date) (civil.Date, civil.Date) {
	offset := (int(d.In(time.UTC).Weekday()) + 6) % 7 // Monday = 0
	start := d.AddDays(-offset)
	return start, start.AddDays(6)
}

func inRange(d, from, to civil.Date) bool {
	return !d.Before(from) && !d.After(to)
}
