package internal

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock supplies the current time. Calendar and date-key logic take the
// result as an explicit argument so tests never touch the host clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reports local wall-clock time
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FormatClock renders seconds as HH:MM:SS. Hours are not capped at 99.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// ParseClock accepts HH:MM:SS, MM:SS, a bare integer of seconds or a Go
// duration string ("25m", "1h30m") and returns a positive whole number of
// seconds.
func ParseClock(input string) (int, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, &DurationError{Input: input, Err: fmt.Errorf("empty")}
	}

	if strings.Contains(trimmed, ":") {
		parts := strings.Split(trimmed, ":")
		if len(parts) > 3 {
			return 0, &DurationError{Input: input, Err: fmt.Errorf("too many fields")}
		}
		total := 0
		for _, part := range parts {
			n, err := strconv.Atoi(part)
			if err != nil || n < 0 {
				return 0, &DurationError{Input: input, Err: fmt.Errorf("field %q is not a non-negative integer", part)}
			}
			total = total*60 + n
		}
		if total <= 0 {
			return 0, &DurationError{Input: input, Err: fmt.Errorf("must be positive")}
		}
		return total, nil
	}

	if n, err := strconv.Atoi(trimmed); err == nil {
		return validateSeconds(input, n)
	}

	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, &DurationError{Input: input, Err: err}
	}
	if d%time.Second != 0 {
		return 0, &DurationError{Input: input, Err: fmt.Errorf("sub-second precision is not supported")}
	}
	return validateSeconds(input, int(d/time.Second))
}

func validateSeconds(input string, seconds int) (int, error) {
	if seconds <= 0 {
		return 0, &DurationError{Input: input, Err: fmt.Errorf("must be positive")}
	}
	return seconds, nil
}
