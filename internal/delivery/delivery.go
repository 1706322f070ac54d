package delivery

import "context"

// Delivery is a long-running inbound adapter (HTTP server, push worker, scheduler).
type Delivery interface {
	Serve(ctx context.Context) error
}
