package utils

import (
	"fmt"
	"time"
)

// FormatSignedPct renders a velocity change as a signed percentage label.
// A nil value renders as the placeholder the UI shows for flat demand.
func FormatSignedPct(v *float64) string {
	if v == nil {
		return "--"
	}
	return fmt.Sprintf("%+.1f%%", *v)
}

// ValidISODate reports whether s is a YYYY-MM-DD date.
func ValidISODate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
