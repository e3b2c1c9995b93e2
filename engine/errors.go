package engine

import (
	"errors"
	"fmt"
)

// InvalidInputError reports input rejected before any statistic was
// computed: an empty series, a malformed bar, or a bad window.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// InsufficientDataError reports a series with too few observations for
// the requested statistic.
type InsufficientDataError struct {
	Statistic string
	Need      int
	Got       int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: need %d, got %d", e.Statistic, e.Need, e.Got)
}

// IsInvalidInput reports whether err is an InvalidInputError.
func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}

// IsInsufficientData reports whether err is an InsufficientDataError.
func IsInsufficientData(err error) bool {
	var target *InsufficientDataError
	return errors.As(err, &target)
}
