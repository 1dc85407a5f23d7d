package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xavierca1/lintra-console/internal/infra/database"
	"github.com/xavierca1/lintra-console/internal/infra/http/handlers"
	"github.com/xavierca1/lintra-console/internal/infra/queue"
	"github.com/xavierca1/lintra-console/internal/infra/worker"
	"github.com/xavierca1/lintra-console/internal/usecase"
)

var serveWithWorker bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sobe a API local do console",
	Long: `Expõe o quadro, o editor de funis, clientes, cobranças e posts em /api,
além de /health e /metrics. Com banco e RabbitMQ configurados, o worker de
histórico roda no mesmo processo (desligue com --with-worker=false).`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveWithWorker, "with-worker", true, "consome os eventos do quadro no mesmo processo")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. Infra opcional
	db, err := connectDatabase(ctx, logger)
	if err != nil {
		return fmt.Errorf("falha ao conectar no banco: %w", err)
	}
	if db != nil {
		defer db.Close()
	}

	mq, publisher, err := connectRabbitMQ(logger)
	if err != nil {
		return fmt.Errorf("falha ao conectar no RabbitMQ: %w", err)
	}
	if mq != nil {
		defer mq.Close()
	}

	// 2. Casos de uso
	a := newApp(publisher, logger)
	var history *usecase.HistoryRecorder
	if db != nil {
		history = usecase.NewHistoryRecorder(database.NewStageTransitionRepository(db), newNotifier(), logger)
	}
	if _, err := a.loadFunnel(ctx, ""); err != nil {
		// a API pode subir antes do CRM; o quadro é recarregado em POST /api/board/load
		logger.Warn("initial board load failed", zap.Error(err))
	}

	// 3. Workers
	refresher := worker.NewBoardRefreshWorker(func(ctx context.Context) error {
		_, err := a.loadFunnel(ctx, "")
		return err
	}, cfg.Board.RefreshInterval, logger)
	go refresher.Start(ctx)

	if serveWithWorker && mq != nil && history != nil {
		consumer := queue.NewWorker(mq.Ch, history, logger)
		go func() {
			if err := consumer.Start(ctx, queue.QueueName); err != nil {
				logger.Error("history worker stopped", zap.Error(err))
			}
		}()
	}

	// 4. Router
	health := handlers.NewHealthHandler(db, nil, a.api)
	if mq != nil {
		health.SetRabbitMQ(mq.Conn)
	}
	router := handlers.NewRouter(handlers.RouterDeps{
		Board:   handlers.NewBoardHandler(a.funnels, a.board, a.deals, history, logger),
		Clients: handlers.NewClientHandler(usecase.NewClientService(a.api, logger), usecase.NewBillingService(a.api, logger), logger),
		Posts:   handlers.NewPostHandler(usecase.NewPostService(a.api, logger), logger),
		Health:  health,
		Logger:  logger,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("console api listening", zap.String("addr", srv.Addr), zap.String("lintra_api", cfg.API.URL))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
