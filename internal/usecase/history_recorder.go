package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xavierca1/lintra-console/internal/entity"
	"github.com/xavierca1/lintra-console/internal/infra/queue"
)

// HistoryRecorder consumes board events: stage changes are stored in the local audit
// history and the deal owner is notified by mail.
type HistoryRecorder struct {
	repo     entity.StageTransitionRepository
	notifier StageChangeNotifier
	logger   *zap.Logger
}

func NewHistoryRecorder(repo entity.StageTransitionRepository, notifier StageChangeNotifier, logger *zap.Logger) *HistoryRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryRecorder{repo: repo, notifier: notifier, logger: logger}
}

func (h *HistoryRecorder) HandleBoardEvent(ctx context.Context, ev queue.BoardEvent) error {
	if ev.Type != queue.EventDealStageChanged {
		h.logger.Debug("board event ignored", zap.String("type", ev.Type), zap.String("event_id", ev.ID))
		return nil
	}
	if ev.DealID == "" || ev.ToStageID == "" {
		return fmt.Errorf("evento %s incompleto", ev.ID)
	}

	t := &entity.StageTransition{
		ID:          ev.ID,
		DealID:      ev.DealID,
		FunnelID:    ev.FunnelID,
		FromStageID: ev.FromStageID,
		ToStageID:   ev.ToStageID,
		ActorID:     ev.OwnerID,
		OccurredAt:  ev.OccurredAt,
	}
	if err := h.repo.Insert(ctx, t); err != nil {
		return &TechnicalError{Code: CodeDatabase, Message: "falha ao gravar histórico", Err: err}
	}

	if h.notifier != nil && ev.OwnerEmail != "" {
		// a transição já foi gravada; falha no e-mail não reprocessa o evento
		if err := h.notifier.NotifyStageChange(ev.OwnerEmail, ev.OwnerName, ev.DealTitle, ev.ToStageName); err != nil {
			h.logger.Warn("stage change mail not sent", zap.String("deal_id", ev.DealID), zap.Error(err))
		}
	}
	h.logger.Info("stage transition recorded",
		zap.String("deal_id", ev.DealID),
		zap.String("from", ev.FromStageID),
		zap.String("to", ev.ToStageID),
	)
	return nil
}

// History lists the recorded transitions of a deal, oldest first.
func (h *HistoryRecorder) History(ctx context.Context, dealID string) ([]entity.StageTransition, error) {
	list, err := h.repo.ListByDeal(ctx, dealID)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "falha ao consultar histórico", Err: err}
	}
	return list, nil
}
