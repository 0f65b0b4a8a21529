package app

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agentstation/paramconv/pkg/logging"
)

// ContextWithSignals creates a context that is cancelled when the application
// receives an interrupt or termination signal. Conversions that have not
// started are skipped; a conversion in flight never leaves a partial file.
func ContextWithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// withLogger attaches the application logger so library code logging via
// logging.FromContext uses the CLI configuration.
func withLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	return logging.WithLogger(ctx, logger)
}
