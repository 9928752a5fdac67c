package service

import (
	"errors"
	"fmt"
	"time"
)

// ErrValidationFailed marks bad caller input. Services wrap it with the detail.
var ErrValidationFailed = errors.New("validation failed")

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, fmt.Sprintf(format, args...))
}

// clock lets tests pin the current time.
type clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
