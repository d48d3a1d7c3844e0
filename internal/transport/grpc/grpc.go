// Package grpc implements the gRPC transport for the translation relay.
//
// This transport exposes a gRPC server for the VoiceRelay service defined in
// proto/relay.proto. It is intended for native mobile clients that prefer a
// strongly-typed binary surface over the JSON endpoint.
package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/vaani-labs/vaani/internal/config"
	"github.com/vaani-labs/vaani/internal/relay"
	"google.golang.org/grpc"
)

// Transport implements transport.Transport over gRPC.
type Transport struct {
	port    int
	handler relay.Handler
	server  *grpc.Server
}

// New creates a new gRPC transport from config.
func New(cfg config.GRPCConfig) *Transport {
	return &Transport{port: cfg.Port}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "grpc" }

// Listen starts the gRPC server and routes incoming requests to the handler.
func (t *Transport) Listen(ctx context.Context, handler relay.Handler) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", t.port))
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}

	t.handler = handler
	t.server = grpc.NewServer()

	// TODO: Register the generated VoiceRelay server here once proto/relay.proto is compiled.
	// pb.RegisterVoiceRelayServer(t.server, &relayServer{handler: handler})

	slog.Info("grpc transport listening", "port", t.port)

	go func() {
		<-ctx.Done()
		slog.Info("grpc transport shutting down")
		t.server.GracefulStop()
	}()

	return t.server.Serve(lis)
}

// Close gracefully stops the gRPC server.
func (t *Transport) Close() error {
	if t.server != nil {
		t.server.GracefulStop()
	}
	return nil
}
