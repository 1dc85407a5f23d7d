package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/xavierca1/lintra-console/internal/infra/metrics"
)

// EventHandler processa um evento do quadro.
type EventHandler interface {
	HandleBoardEvent(ctx context.Context, event BoardEvent) error
}

type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel Consumer
	Handler EventHandler
	logger  *zap.Logger
}

func NewWorker(ch Consumer, handler EventHandler, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{Channel: ch, Handler: handler, logger: logger}
}

// Start consome a fila até ctx ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	w.logger.Info("worker waiting for board events", zap.String("queue", queueName))
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.handleDelivery(ctx, d)
		}
	}
}

// handleDelivery: JSON inválido e falhas vão para a DLQ, sem requeue.
func (w *Worker) handleDelivery(ctx context.Context, d amqp.Delivery) {
	var event BoardEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		w.logger.Error("invalid board event payload", zap.Error(err))
		metrics.RecordEventConsumed("invalid")
		_ = d.Nack(false, false)
		return
	}

	if err := w.Handler.HandleBoardEvent(ctx, event); err != nil {
		w.logger.Error("board event failed",
			zap.String("event_id", event.ID),
			zap.String("type", event.Type),
			zap.Error(err),
		)
		metrics.RecordEventConsumed("failed")
		_ = d.Nack(false, false)
		return
	}

	metrics.RecordEventConsumed("ok")
	_ = d.Ack(false)
}
