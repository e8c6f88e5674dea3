package cli

import (
	"errors"
	"strconv"
)

// ExitError carries a process exit code. A nil Err means the command already
// reported the problem and nothing else should be printed.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status " + strconv.Itoa(e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ErrRejected is returned by Accepts for a valid run that ends outside the accepting states.
var ErrRejected = &ExitError{Code: 2}

// ExitCode maps an error returned by a command to the process exit code:
// 0 on success, the code of an ExitError, and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	return 1
}

// Silent reports whether err has already been reported to the user.
func Silent(err error) bool {
	var exit *ExitError
	return errors.As(err, &exit) && exit.Err == nil
}
