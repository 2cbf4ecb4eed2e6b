package core

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

var NowFunc = time.Now // mockable

// Today returns the current calendar date in the local time zone.
func Today() civil.Date {
	return civil.DateOf(NowFunc())
}

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}
