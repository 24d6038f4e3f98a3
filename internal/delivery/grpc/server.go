package grpc

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/Xausdorf/ledger-core/internal/delivery/grpc/ledgerv1"
)

// NewServer returns a gRPC server with the ledger service registered and
// every unary call logged.
func NewServer(h *Handler, logger *zap.Logger, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(loggingInterceptor(logger)))
	srv := grpc.NewServer(opts...)
	ledgerv1.RegisterLedgerServer(srv, h)
	return srv
}

func loggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.Info("grpc request",
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("duration", time.Since(start)),
		)
		return resp, err
	}
}
