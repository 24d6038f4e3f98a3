package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/reflection"

	grpcdelivery "github.com/Xausdorf/ledger-core/internal/delivery/grpc"
	httpdelivery "github.com/Xausdorf/ledger-core/internal/delivery/http"
	"github.com/Xausdorf/ledger-core/internal/domain/event"
	"github.com/Xausdorf/ledger-core/internal/infrastructure/config"
	"github.com/Xausdorf/ledger-core/internal/infrastructure/kafka"
	"github.com/Xausdorf/ledger-core/internal/infrastructure/memory"
	"github.com/Xausdorf/ledger-core/internal/infrastructure/qrgenerator"
	"github.com/Xausdorf/ledger-core/internal/usecase/account"
	"github.com/Xausdorf/ledger-core/internal/usecase/generateqr"
	"github.com/Xausdorf/ledger-core/internal/usecase/transfer"
)

const readHeaderTimeout = 5 * time.Second

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create zap logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("ledger stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	var publisher event.Publisher = event.NopPublisher{}
	if cfg.EventsEnabled() {
		producerLogger := logger.With(zap.String("component", "KafkaProducer"))
		kafkaPublisher := kafka.NewPublisher(
			kafka.NewWriter(cfg.KafkaBrokers, cfg.KafkaTransferTopic, producerLogger),
			producerLogger,
		)
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				logger.Error("close kafka publisher", zap.Error(err))
			}
		}()
		publisher = kafkaPublisher
		logger.Info("transfer events enabled",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTransferTopic),
		)
	}

	accounts := memory.NewAccountRepo()
	ledger := memory.NewTransactionRepo()

	accountUC := account.NewUseCase(accounts,
		account.WithLogger(logger.With(zap.String("component", "AccountUseCase"))),
		account.WithTracerProvider(tp),
	)
	transferUC := transfer.NewUseCase(accounts, ledger,
		transfer.WithLogger(logger.With(zap.String("component", "TransferUseCase"))),
		transfer.WithPublisher(publisher),
		transfer.WithTracerProvider(tp),
	)
	generateQRUC := generateqr.NewUseCase(accountUC, qrgenerator.NewGenerator(cfg.QRCodeSize))

	httpHandler := httpdelivery.NewHandler(accountUC, transferUC, generateQRUC,
		logger.With(zap.String("component", "HTTPHandler")))
	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpdelivery.NewRouter(httpHandler, cfg.RequestTimeout),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	grpcSrv := grpcdelivery.NewServer(
		grpcdelivery.NewHandler(accountUC, transferUC),
		logger.With(zap.String("component", "GRPCHandler")),
	)
	reflection.Register(grpcSrv)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.GRPCAddr, err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("gRPC server starting", zap.String("addr", cfg.GRPCAddr))
		if err := grpcSrv.Serve(lis); err != nil {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			grpcSrv.GracefulStop()
			close(stopped)
		}()

		err := httpSrv.Shutdown(shutdownCtx)

		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			grpcSrv.Stop()
		}
		return err
	})

	return g.Wait()
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(lvl)
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.TimeKey = "timestamp"

	return zapConfig.Build()
}
