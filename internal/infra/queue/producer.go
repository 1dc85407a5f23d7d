package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Board event types.
const (
	EventDealStageChanged = "deal.stage_changed"
	EventDealCreated      = "deal.created"
	EventDealDeleted      = "deal.deleted"
	EventFunnelSaved      = "funnel.saved"
	EventFunnelDeleted    = "funnel.deleted"
)

// BoardEvent is published after the remote API confirmed a board mutation.
type BoardEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	FunnelID    string    `json:"funnel_id"`
	DealID      string    `json:"deal_id,omitempty"`
	DealTitle   string    `json:"deal_title,omitempty"`
	FromStageID string    `json:"from_stage_id,omitempty"`
	ToStageID   string    `json:"to_stage_id,omitempty"`
	ToStageName string    `json:"to_stage_name,omitempty"`
	OwnerID     string    `json:"owner_id,omitempty"`
	OwnerName   string    `json:"owner_name,omitempty"`
	OwnerEmail  string    `json:"owner_email,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewBoardEvent fills ID and OccurredAt.
func NewBoardEvent(eventType, funnelID string) BoardEvent {
	return BoardEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		FunnelID:   funnelID,
		OccurredAt: time.Now().UTC(),
	}
}

// Channel is the part of *amqp.Channel the producer needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Channel
}

func NewProducer(ch Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishBoardEvent(ctx context.Context, event BoardEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("erro ao converter evento: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    event.ID,
			Type:         event.Type,
			Timestamp:    event.OccurredAt,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}
	return nil
}
