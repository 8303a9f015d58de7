package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/usestring/recall-stream/internal/render"
	"github.com/usestring/recall-stream/pkg/client"
	"github.com/usestring/recall-stream/pkg/types"
)

// Error codes for MCP tool responses.
const (
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeConnectionError = "CONNECTION_ERROR"
	ErrCodeNotImplemented  = "NOT_IMPLEMENTED"
	ErrCodeTimeout         = "TIMEOUT"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeInternal        = "INTERNAL"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapError converts a session, transport or render error to a coded error.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}

	var (
		verr    *types.ValidationError
		connErr *client.ConnectionError
		netErr  net.Error
	)
	switch {
	case errors.As(err, &verr):
		coded = &CodedError{Code: ErrCodeInvalidInput, Message: types.ValidationNotice, Cause: err}
	case errors.Is(err, render.ErrExportNotImplemented):
		coded = &CodedError{Code: ErrCodeNotImplemented, Message: "export is not available yet", Cause: err}
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		coded = &CodedError{Code: ErrCodeTimeout, Message: "operation timed out", Cause: err}
	case errors.As(err, &connErr), errors.Is(err, client.ErrNotConnected):
		coded = &CodedError{Code: ErrCodeConnectionError, Message: "search backend unreachable", Cause: err}
	default:
		coded = &CodedError{Code: ErrCodeInternal, Message: err.Error(), Cause: err}
	}

	slog.Warn("tool error",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)

	return coded
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
