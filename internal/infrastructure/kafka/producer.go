package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xausdorf/ledger-core/internal/domain/event"
)

const writeTimeout = 10 * time.Second

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher sends TransferCommitted events keyed by operation id, so every
// event of one operation lands on the same partition.
type Publisher struct {
	writer MessageWriter
	logger *zap.Logger
}

func NewWriter(brokers []string, topic string, logger *zap.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: writeTimeout,
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) { logger.Debug(fmt.Sprintf(msg, args...)) }),
		ErrorLogger:  kafka.LoggerFunc(func(msg string, args ...any) { logger.Error(fmt.Sprintf(msg, args...)) }),
	}
}

func NewPublisher(writer MessageWriter, logger *zap.Logger) *Publisher {
	return &Publisher{writer: writer, logger: logger}
}

func (p *Publisher) PublishTransferCommitted(ctx context.Context, e event.TransferCommitted) error {
	msg, err := encodeTransferCommitted(e)
	if err != nil {
		return err
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		return fmt.Errorf("write transfer event %d: %w", e.OperationID, err)
	}
	p.logger.Debug("transfer event published", zap.Int32("operation_id", e.OperationID))
	return nil
}

func (p *Publisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("close kafka writer: %w", err)
	}
	return nil
}

func encodeTransferCommitted(e event.TransferCommitted) (kafka.Message, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode transfer event %d: %w", e.OperationID, err)
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatInt(int64(e.OperationID), 10)),
		Value: value,
		Time:  e.CommittedAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte("transfer.committed")},
		},
	}, nil
}

var _ event.Publisher = (*Publisher)(nil)
