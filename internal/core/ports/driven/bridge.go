package driven

import "context"

// Call describes one remote operation handed to a RemoteBridge.
type Call struct {
	// Token is the bearer token obtained for this call.
	Token string
	// ServiceRoot is the base URL of the remote service.
	ServiceRoot string
	// Path is the absolute resource address the operation targets.
	Path string
	// Operation is the operation name, e.g. "getMessages" or "moveMessage".
	Operation string
	// Payload holds the operation arguments as strings.
	// Structured arguments are JSON-encoded.
	Payload []string
}

// RemoteBridge executes named operations against the remote service.
// A successful call returns the raw JSON response text, which is empty for
// operations that produce no body.
type RemoteBridge interface {
	Execute(ctx context.Context, call Call) ([]byte, error)
}

// RemoteBridgeFunc adapts a function to the RemoteBridge interface.
type RemoteBridgeFunc func(ctx context.Context, call Call) ([]byte, error)

// Execute calls f.
func (f RemoteBridgeFunc) Execute(ctx context.Context, call Call) ([]byte, error) {
	return f(ctx, call)
}
