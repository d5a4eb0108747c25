package ports

import (
	"context"
	"net/http"
)

// Telemetry is an optional, best-effort usage event sink. Implementations
// must swallow their own failures: telemetry never affects core control flow.
type Telemetry interface {
	// Emit records a named usage event with optional attributes.
	// Fire-and-forget; errors are not reported to the caller.
	Emit(ctx context.Context, event string, attrs map[string]string)
}

// HTTPClient abstracts the HTTP transport for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
