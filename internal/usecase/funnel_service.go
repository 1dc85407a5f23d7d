package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/xavierca1/lintra-console/internal/entity"
	"github.com/xavierca1/lintra-console/internal/infra/metrics"
	"github.com/xavierca1/lintra-console/internal/infra/queue"
)

type FunnelService struct {
	store     *Store
	pipelines PipelineGateway
	publisher EventPublisher
	logger    *zap.Logger
}

func NewFunnelService(store *Store, pipelines PipelineGateway, publisher EventPublisher, logger *zap.Logger) *FunnelService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FunnelService{store: store, pipelines: pipelines, publisher: publisher, logger: logger}
}

// Refresh reloads the funnel list. The first funnel becomes active when none is.
func (s *FunnelService) Refresh(ctx context.Context) ([]entity.Funnel, error) {
	funnels, err := s.pipelines.ListPipelines(ctx)
	if err != nil {
		return nil, remoteFailure("carregar funis", err)
	}
	s.store.SetFunnels(funnels)
	return s.store.Funnels(), nil
}

func (s *FunnelService) Select(funnelID string) error {
	if err := s.store.SetActiveFunnel(funnelID); err != nil {
		return notFound("funil não encontrado")
	}
	return nil
}

// SaveFunnel creates (empty id) or fully overwrites a funnel and mirrors the result
// in the store. A created funnel becomes active.
func (s *FunnelService) SaveFunnel(ctx context.Context, id, name string, stages []entity.Stage) (*entity.Funnel, error) {
	draft := entity.Funnel{ID: id, Name: name, Stages: stages}
	if err := draft.Validate(); err != nil {
		return nil, validationError(err)
	}

	if id == "" {
		f, err := s.pipelines.CreatePipeline(ctx, name, stages)
		if err != nil {
			return nil, remoteFailure("salvar funil", err)
		}
		s.store.AddFunnel(*f)
		_ = s.store.SetActiveFunnel(f.ID)
		metrics.RecordFunnelSaved("create")
		s.logger.Info("funnel created", zap.String("funnel_id", f.ID), zap.Int("stages", len(f.Stages)))
		s.publish(ctx, queue.NewBoardEvent(queue.EventFunnelSaved, f.ID))
		return f, nil
	}

	f, err := s.pipelines.UpdatePipeline(ctx, id, name, stages)
	if err != nil {
		return nil, remoteFailure("salvar funil", err)
	}
	if f.ID == "" {
		f.ID = id
	}
	if err := s.store.ReplaceFunnel(*f); err != nil {
		s.store.AddFunnel(*f)
	}
	metrics.RecordFunnelSaved("update")
	s.logger.Info("funnel updated", zap.String("funnel_id", f.ID), zap.Int("stages", len(f.Stages)))
	s.publish(ctx, queue.NewBoardEvent(queue.EventFunnelSaved, f.ID))
	return f, nil
}

// Delete asks for confirmation, deletes remotely and then drops the funnel and its
// deals locally.
func (s *FunnelService) Delete(ctx context.Context, funnelID string, confirm Confirmer) (bool, error) {
	f, ok := s.store.Funnel(funnelID)
	if !ok {
		return false, notFound("funil não encontrado")
	}
	if !confirm.Confirm("Excluir o funil \"" + f.Name + "\" e todas as suas oportunidades?") {
		return false, nil
	}
	if err := s.pipelines.DeletePipeline(ctx, funnelID); err != nil {
		return false, remoteFailure("excluir funil", err)
	}
	_ = s.store.RemoveFunnel(funnelID)
	s.logger.Info("funnel deleted", zap.String("funnel_id", funnelID))
	s.publish(ctx, queue.NewBoardEvent(queue.EventFunnelDeleted, funnelID))
	return true, nil
}

func (s *FunnelService) publish(ctx context.Context, ev queue.BoardEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishBoardEvent(ctx, ev); err != nil {
		s.logger.Warn("board event not published", zap.String("type", ev.Type), zap.Error(err))
	}
}
