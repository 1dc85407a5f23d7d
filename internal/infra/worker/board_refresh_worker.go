package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RefreshFunc recarrega funis e oportunidades a partir da API remota.
type RefreshFunc func(ctx context.Context) error

// BoardRefreshWorker mantém o quadro do servidor em dia com oportunidades criadas
// fora do console. Cards já carregados não são sobrescritos.
type BoardRefreshWorker struct {
	refresh      RefreshFunc
	tickInterval time.Duration
	logger       *zap.Logger
}

func NewBoardRefreshWorker(refresh RefreshFunc, interval time.Duration, logger *zap.Logger) *BoardRefreshWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BoardRefreshWorker{
		refresh:      refresh,
		tickInterval: interval,
		logger:       logger,
	}
}

// Start bloqueia até ctx ser cancelado. Um intervalo <= 0 desliga o worker.
func (w *BoardRefreshWorker) Start(ctx context.Context) {
	if w.tickInterval <= 0 {
		w.logger.Info("board refresh disabled")
		return
	}
	w.logger.Info("board refresh worker started", zap.Duration("interval", w.tickInterval))

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("board refresh worker stopped")
			return
		case <-ticker.C:
			w.refreshOnce(ctx)
		}
	}
}

func (w *BoardRefreshWorker) refreshOnce(ctx context.Context) {
	start := time.Now()
	if err := w.refresh(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		w.logger.Warn("board refresh failed", zap.Error(err))
		return
	}
	w.logger.Debug("board refreshed", zap.Duration("elapsed", time.Since(start)))
}
