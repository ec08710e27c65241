// Package exitcode defines named exit codes for the flash-ui CLI.
//
// Each code maps a specific termination condition to a numeric value
// recognized by shell scripts and CI pipelines.
package exitcode

import (
	"context"
	"errors"
)

// Exit code constants.
const (
	Success          = 0   // Command completed
	Error            = 1   // Invalid args, file not found, misconfiguration
	GenerationFailed = 2   // The model produced no usable artifact
	Interrupted      = 130 // SIGINT/SIGTERM received
)

// ErrGenerationFailed marks errors that should exit with GenerationFailed.
var ErrGenerationFailed = errors.New("generation failed")

// Name returns the human-readable name for the given exit code.
// Unknown codes return "unknown".
func Name(code int) string {
	switch code {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case GenerationFailed:
		return "GenerationFailed"
	case Interrupted:
		return "Interrupted"
	default:
		return "unknown"
	}
}

// ForError maps a command error to its exit code.
func ForError(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, context.Canceled):
		return Interrupted
	case errors.Is(err, ErrGenerationFailed):
		return GenerationFailed
	default:
		return Error
	}
}
