package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Anas-en/College-event-management/internal/domain"
)

// Exit codes for eventctl.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // rejected input or unknown record
	ExitCommandError = 2 // storage or configuration problem
)

// Error codes reported in JSON output.
const (
	ErrCodeNotFound    = "not_found"
	ErrCodeValidation  = "validation"
	ErrCodeUnavailable = "storage_unavailable"
	ErrCodeInternal    = "internal"
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error

	reported bool
}

// Reported tells whether the error was already written to the command output.
func (e *ExitError) Reported() bool {
	return e.reported
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// GetExitCode returns ExitFailure for errors that are not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter writes command results as text or as a JSON envelope.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

type CLIResponse struct {
	Status string    `json:"status"`
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success writes data as JSON, or calls text to render it for humans.
func (f *OutputFormatter) Success(data any, text func(w io.Writer) error) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}
	return text(f.Writer)
}

// Fail reports err in the configured format and returns the matching ExitError.
func (f *OutputFormatter) Fail(message string, err error) error {
	code, exit := classify(err)

	if f.Format == "json" {
		_ = json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: fmt.Sprintf("%s: %v", message, err),
			},
		})
	} else {
		fmt.Fprintf(f.Writer, "Error [%s]: %s: %v\n", code, message, err)
	}

	return &ExitError{Code: exit, Message: message, Err: err, reported: true}
}

func classify(err error) (string, int) {
	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		return ErrCodeNotFound, ExitFailure
	case errors.Is(err, domain.ErrValidation):
		return ErrCodeValidation, ExitFailure
	case errors.Is(err, domain.ErrStorageUnavailable):
		return ErrCodeUnavailable, ExitCommandError
	default:
		return ErrCodeInternal, ExitCommandError
	}
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}
