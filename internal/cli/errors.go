package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/csvtypes/internal/config"
	"github.com/ppiankov/csvtypes/internal/model"
	"github.com/ppiankov/csvtypes/internal/registry"
	"github.com/ppiankov/csvtypes/internal/worker"
)

// Exit codes
const (
	ExitFailure    = 1 // Any fatal error
	ExitUsage      = 2 // Bad flags or arguments
	ExitMismatches = 3 // assert --strict found non-conforming rows
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// toExitError maps domain errors to the messages printed to the user
func toExitError(err error) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	var undefined *registry.UndefinedTypeError
	var joinErr *worker.JoinError

	switch {
	case errors.Is(err, model.ErrThreadCount):
		return &ExitError{Code: ExitFailure, Message: "The thread count must be bigger than 0"}
	case errors.Is(err, model.ErrColumnCountMismatch):
		return &ExitError{Code: ExitFailure, Message: "The given number of types does not match the number of columns"}
	case errors.As(err, &undefined):
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("The type %s is not defined", undefined.Name)}
	case errors.As(err, &joinErr):
		return &ExitError{Code: ExitFailure, Message: "Could not join threads."}
	case errors.Is(err, config.ErrConflictingFiles):
		return &ExitError{Code: ExitUsage, Message: "You can only use one of --config-file --config-file-replace-default at a time"}
	case strings.HasPrefix(err.Error(), "unknown command"):
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	default:
		return &ExitError{Code: ExitFailure, Message: err.Error()}
	}
}
