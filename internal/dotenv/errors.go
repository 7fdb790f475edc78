package dotenv

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFileUnreadable is returned when the target file is missing or cannot be read.
	ErrFileUnreadable = errors.New("invalid file")
	// ErrFileEmpty is returned when the target file exists but holds no lines.
	ErrFileEmpty = errors.New("error while reading file")
	// ErrMissingRequired matches any *MissingRequiredError via errors.Is.
	ErrMissingRequired = errors.New("required variable(s) not set")
)

// MissingRequiredError lists the required variables that were not set after a load.
type MissingRequiredError struct {
	Keys []string
}

func (e *MissingRequiredError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMissingRequired, strings.Join(e.Keys, ", "))
}

func (e *MissingRequiredError) Is(target error) bool {
	return target == ErrMissingRequired
}
