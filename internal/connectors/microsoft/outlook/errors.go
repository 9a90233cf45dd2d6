package outlook

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft"
)

// Validation sentinels. Each is delivered wrapped in a *LocalValidationError.
var (
	// ErrInvalidPathSegment indicates an empty navigation segment or id.
	ErrInvalidPathSegment = errors.New("outlook: invalid path segment")

	// ErrMissingDiscriminator indicates an attachment without a concrete type was written.
	ErrMissingDiscriminator = errors.New("outlook: attachment type discriminator missing")

	// ErrInvalidPayload indicates a write payload failed validation.
	ErrInvalidPayload = errors.New("outlook: invalid payload")

	// ErrNotBound indicates a resource that was not obtained from a Client.
	ErrNotBound = errors.New("outlook: resource is not bound to a client")
)

// ErrMalformedResponse indicates a response body that could not be hydrated.
// It is delivered wrapped in a *TransportError.
var ErrMalformedResponse = errors.New("outlook: malformed response")

// RemoteServiceError is a structured error returned by the remote service.
type RemoteServiceError = microsoft.ServiceError

// TransportError reports a call that failed before a structured response
// was available: token acquisition, network failure or a malformed body.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("outlook: %s: transport: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// LocalValidationError reports input rejected before any remote call.
type LocalValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *LocalValidationError) Error() string {
	if e.Field == "" {
		return "outlook: " + e.Reason
	}
	return fmt.Sprintf("outlook: invalid %s: %s", e.Field, e.Reason)
}

func (e *LocalValidationError) Unwrap() error {
	return e.Err
}

// IsRemoteError reports whether err carries a structured service error.
func IsRemoteError(err error) bool {
	var svcErr *RemoteServiceError
	return errors.As(err, &svcErr)
}

// RemoteErrorCode returns the service error code carried by err, if any.
func RemoteErrorCode(err error) string {
	var svcErr *RemoteServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	return ""
}

// normalizeError maps any failure onto the three error kinds.
// Errors that are already classified pass through unchanged. Error text that
// is a service error document is decoded; everything else is a transport failure.
func normalizeError(op string, err error) error {
	if err == nil {
		return nil
	}

	var (
		svcErr       *RemoteServiceError
		transportErr *TransportError
		localErr     *LocalValidationError
	)
	switch {
	case errors.As(err, &svcErr), errors.As(err, &transportErr), errors.As(err, &localErr):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &TransportError{Op: op, Err: err}
	}

	if parsed, ok := microsoft.ParseErrorString(err.Error()); ok {
		return parsed
	}
	return &TransportError{Op: op, Err: err}
}
