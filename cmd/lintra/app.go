package main

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/xavierca1/lintra-console/internal/entity"
	"github.com/xavierca1/lintra-console/internal/infra/database"
	"github.com/xavierca1/lintra-console/internal/infra/integration/lintra"
	"github.com/xavierca1/lintra-console/internal/infra/queue"
	"github.com/xavierca1/lintra-console/internal/usecase"
)

// app reúne o cliente da API e os casos de uso compartilhados pelos comandos.
type app struct {
	api     *lintra.Client
	store   *usecase.Store
	board   *usecase.Board
	funnels *usecase.FunnelService
	deals   *usecase.DealForm
}

func newApp(publisher usecase.EventPublisher, log *zap.Logger) *app {
	api := lintra.NewClient(cfg.API.URL, cfg.API.Key, cfg.API.Timeout, lintra.WithLogger(log))
	store := usecase.NewStore()

	policy := usecase.RollbackOnFailure
	if !cfg.Board.RollbackOnFailure {
		policy = usecase.KeepOptimistic
	}
	board := usecase.NewBoard(store, api,
		usecase.WithRollbackPolicy(policy),
		usecase.WithDirectory(api),
		usecase.WithPublisher(publisher),
		usecase.WithBoardLogger(log),
	)

	return &app{
		api:     api,
		store:   store,
		board:   board,
		funnels: usecase.NewFunnelService(store, api, publisher, log),
		deals:   usecase.NewDealForm(store, api, publisher, log),
	}
}

// loadFunnel recarrega os funis, seleciona funnelID (ou mantém o ativo) e carrega o quadro.
func (a *app) loadFunnel(ctx context.Context, funnelID string) (entity.Funnel, error) {
	if _, err := a.funnels.Refresh(ctx); err != nil {
		return entity.Funnel{}, err
	}
	if funnelID != "" {
		if err := a.funnels.Select(funnelID); err != nil {
			return entity.Funnel{}, err
		}
	}
	f, ok := a.store.ActiveFunnel()
	if !ok {
		return entity.Funnel{}, errors.New("nenhum funil cadastrado")
	}
	if err := a.board.Load(ctx, f.ID); err != nil {
		return entity.Funnel{}, err
	}
	if err := a.board.LoadDirectory(ctx); err != nil {
		return entity.Funnel{}, err
	}
	return f, nil
}

// connectRabbitMQ devolve (nil, nil, nil) quando a fila não está configurada.
func connectRabbitMQ(log *zap.Logger) (*queue.RabbitMQ, usecase.EventPublisher, error) {
	if cfg.RabbitMQ.URL == "" {
		log.Info("rabbitmq not configured, board events disabled")
		return nil, nil, nil
	}
	mq, err := queue.NewRabbitMQ(cfg.RabbitMQ.URL)
	if err != nil {
		return nil, nil, err
	}
	return mq, queue.NewProducer(mq.Ch), nil
}

// connectDatabase abre o Postgres do histórico e garante o schema.
func connectDatabase(ctx context.Context, log *zap.Logger) (*sql.DB, error) {
	if cfg.Database.URL == "" {
		log.Info("database not configured, stage history disabled")
		return nil, nil
	}
	db, err := database.NewDBConnection(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
