package notification

import "context"

// Severity mirrors the notice levels the original interface surfaced:
// success for confirmations, warning for optimistic "requested" notices,
// error for rejected requests.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notice is a transient user-facing message.
type Notice struct {
	ID       string   `json:"id"`
	User     string   `json:"user,omitempty"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Notifier delivers notices. Delivery is best effort; a lost notice never
// affects booking state.
type Notifier interface {
	Notify(ctx context.Context, notice Notice) error
}
