package editstate

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by errors for actions referring to points, contours,
// layers or components which do not exist. Gesture handlers abort on it.
var ErrNotFound = errors.New("not found")

// ErrRejected is wrapped by errors for actions which are well-formed but not
// permitted in the current state, e.g. removing the outline layer.
var ErrRejected = errors.New("rejected")

// EditError describes why an action could not be applied. The state is left
// unchanged whenever Apply returns an error.
type EditError struct {
	Action string // name of the action, e.g. "ConnectPoints"
	Issue  string // human-readable description of the issue
	Err    error  // ErrNotFound or ErrRejected
}

// Error implements the error interface.
func (e *EditError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Action, e.Err, e.Issue)
}

func (e *EditError) Unwrap() error {
	return e.Err
}

func notFound(a Action, format string, args ...any) error {
	return &EditError{Action: a.name(), Issue: fmt.Sprintf(format, args...), Err: ErrNotFound}
}

func rejected(a Action, format string, args ...any) error {
	return &EditError{Action: a.name(), Issue: fmt.Sprintf(format, args...), Err: ErrRejected}
}
