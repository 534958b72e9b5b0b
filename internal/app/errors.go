package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrInitialization indicates an initialization failure.
	ErrInitialization = errors.New("initialization failed")

	// ErrUnknownFormat indicates an output format the application cannot write.
	ErrUnknownFormat = errors.New("unknown output format")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op   string // Operation name (e.g., "read", "write", "load config")
	Line int    // Input line, 1-based; 0 when not tied to a line
	Err  error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op string, line int, err error) *OperationError {
	return &OperationError{
		Op:   op,
		Line: line,
		Err:  err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Line > 0 {
		msg = fmt.Sprintf("%s (line %d)", msg, e.Line)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
