package cli

import (
	"errors"
	"fmt"
)

// Exit codes.
const (
	ExitHealthy   = 0
	ExitUnhealthy = 1
	ExitUsage     = 2
)

// ExitError carries a process exit code.
type ExitError struct {
	Code int
	Err  error

	// Silent means the failure was already reported and needs no message.
	Silent bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Err: err}
}

// ExitCode maps an Execute error to a process exit code. Errors that are not
// an ExitError come from cobra's argument handling and count as usage errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitHealthy
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ExitUsage
}

// IsSilent reports whether err needs no message on stderr.
func IsSilent(err error) bool {
	var ee *ExitError
	return errors.As(err, &ee) && ee.Silent
}
