package events

import (
	"context"

	"coladay/models"
)

// Handler receives one confirmation per successful ledger mutation.
type Handler func(models.Confirmation)

// Subscription is the handle returned by Subscribe. Close detaches the
// handler; closing twice is a no-op.
type Subscription interface {
	Close()
}

// Bus decouples the ledger's confirmation stream from any particular
// transport. Exactly one subscription exists per live consumer, torn down
// deterministically via its handle.
type Bus interface {
	Publish(ctx context.Context, confirmation models.Confirmation)
	Subscribe(handler Handler) Subscription
}
