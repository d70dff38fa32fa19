// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
)

// Exit codes.
const (
	ExitSuccess     = 0   // Success
	ExitError       = 1   // Runtime failure (compute, storage, graph database)
	ExitConfigError = 2   // Invalid configuration or flags
	ExitDataError   = 3   // Malformed or incompatible input data
	ExitInterrupted = 130 // Canceled by SIGINT or SIGTERM
)

// exitError carries the process exit code for a command failure.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func fail(code int, format string, args ...any) error {
	return &exitError{code: code, err: fmt.Errorf(format, args...)}
}

// exitCode maps err to a process exit code; errors without one are ExitError.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}

	return ExitError
}
