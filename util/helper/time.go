// util/helper/time.go
package helper_util

import "time"

// ParseTime parses an RFC3339 timestamp from a query parameter.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// ParseTimeOr parses an RFC3339 timestamp, falling back to def when the
// parameter is empty.
func ParseTimeOr(s string, def time.Time) (time.Time, error) {
	if s == "" {
		return def, nil
	}
	return time.Parse(time.RFC3339, s)
}
