package entity

import (
	"context"
	"time"
)

// StageTransition registra uma mudança de etapa confirmada pelo servidor.
type StageTransition struct {
	ID          string    `json:"id"`
	DealID      string    `json:"deal_id"`
	FunnelID    string    `json:"funnel_id"`
	FromStageID string    `json:"from_stage_id"`
	ToStageID   string    `json:"to_stage_id"`
	ActorID     string    `json:"actor_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type StageTransitionRepository interface {
	Insert(ctx context.Context, t *StageTransition) error
	ListByDeal(ctx context.Context, dealID string) ([]StageTransition, error)
}
