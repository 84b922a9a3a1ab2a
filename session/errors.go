package session

import (
	"errors"
	"fmt"
)

// ErrDeclined is returned when the confirmation gate denies a
// state-changing call. No remote call is issued.
var ErrDeclined = errors.New("session: operation declined")

// ErrClosed is returned when an operation is attempted on a closed session.
var ErrClosed = errors.New("session: session is closed")

// NotFoundError reports an identifier that does not resolve to an existing
// remote object.
type NotFoundError struct {
	// ID is the TCM URI that failed to resolve.
	ID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session: item %s does not exist", e.ID)
}

// UnsupportedOperationError reports a feature gated behind a server
// version requirement the configured version does not meet.
type UnsupportedOperationError struct {
	// Operation names the gated feature.
	Operation string

	// Version is the configured server version.
	Version Version
}

// Error implements the error interface.
func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("session: %s requires web-8.1 or later (configured version: %s)", e.Operation, e.Version)
}

// ConnectionError reports that the gateway session could not be
// established. The session is never usable after it.
type ConnectionError struct {
	// Endpoint is the Core Service endpoint URL.
	Endpoint string

	// Err is the underlying transport or authentication failure.
	Err error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("session: cannot connect to %s: %v", e.Endpoint, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}
