package media

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidDuration = errors.New("invalid duration")

// FormatDuration renders seconds as MM:SS, or HH:MM:SS from one hour up.
// Fractions are floored. Zero, negative and non-finite input render as 00:00.
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	total := int64(math.Floor(seconds))
	hrs := total / 3600
	mins := (total % 3600) / 60
	secs := total % 60
	if hrs == 0 {
		return fmt.Sprintf("%02d:%02d", mins, secs)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hrs, mins, secs)
}

// ParseDuration reads MM:SS, HH:MM:SS or a plain number of seconds.
func ParseDuration(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidDuration
	}
	if !strings.Contains(s, ":") {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
		}
		return v, nil
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	var total float64
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
		}
		if i > 0 && n > 59 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
		}
		total = total*60 + float64(n)
	}
	return total, nil
}

// NormalizeDuration re-renders a client supplied duration in the canonical
// format so "0:02:05" and "125" both become "02:05".
func NormalizeDuration(s string) (string, error) {
	v, err := ParseDuration(s)
	if err != nil {
		return "", err
	}
	return FormatDuration(v), nil
}
