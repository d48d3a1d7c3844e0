// Package transport defines the interface for pluggable relay transports.
//
// Each transport (HTTP, gRPC) accepts translation requests and drives them
// through the same relay.Handler. The daemon doesn't care how requests
// arrive — it only works with the Transport contract.
package transport

import (
	"context"

	"github.com/vaani-labs/vaani/internal/relay"
)

// Transport is the interface that every transport adapter must implement.
type Transport interface {
	// Name returns the transport identifier (e.g., "http", "grpc").
	Name() string

	// Listen starts accepting translation requests and runs them through
	// the handler. It blocks until the context is cancelled.
	Listen(ctx context.Context, handler relay.Handler) error

	// Close gracefully shuts down the transport, draining in-flight work.
	Close() error
}
