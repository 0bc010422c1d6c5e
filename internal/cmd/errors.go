package cmd

import "fmt"

// SilentExitError ends the command with Code without printing an error.
// Commands that already told the operator what went wrong return it.
type SilentExitError struct {
	Code int
}

func (e *SilentExitError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// NewSilentExit returns an error that exits with code and prints nothing.
func NewSilentExit(code int) error {
	return &SilentExitError{Code: code}
}
