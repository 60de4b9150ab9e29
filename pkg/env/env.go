package env

import (
	"fmt"
	"strconv"
	"time"
)

type Error struct {
	Name string
}

func (e *Error) Error() string {
	return fmt.Sprintf("unable to access environment variable: %s", e.Name)
}

type TypeError struct {
	Name string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("unable to convert environment variable: %s", e.Name)
}

// ParseDuration accepts either a Go duration string or a bare number of
// seconds. Negative values are turned positive.
func ParseDuration(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		s = fmt.Sprintf("%ds", n)
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("unable to parse duration: %w", err)
	}
	if d < 0 {
		d = -d
	}

	return d, nil
}
