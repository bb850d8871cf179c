package transform

import (
	"strings"

	"github.com/pkg/errors"
)

// EmptyInputError is raised when a shaping rule that requires input rows is
// given none. This is a deliberate fail-loud policy: "no new data" is decided
// at the discovery stage, so an empty row-set reaching a shaper means
// something upstream went wrong.
type EmptyInputError struct {
	Entity string
}

func (e *EmptyInputError) Error() string {
	return "DataFrame is empty"
}

// IsEmptyInput reports whether err is, or wraps, an EmptyInputError.
func IsEmptyInput(err error) bool {
	var e *EmptyInputError
	if errors.As(err, &e) {
		return true
	}
	// Also match on the message for errors that crossed a process boundary.
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "frame is empty")
}
