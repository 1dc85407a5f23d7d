package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xavierca1/lintra-console/internal/infra/database"
	"github.com/xavierca1/lintra-console/internal/infra/mail"
	"github.com/xavierca1/lintra-console/internal/infra/queue"
	"github.com/xavierca1/lintra-console/internal/usecase"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consome os eventos do quadro e grava o histórico de etapas",
	Long: `Lê a fila q.crm.history, grava cada deal.stage_changed na tabela
stage_transitions e avisa o responsável por e-mail quando MAIL_HOST está definido.
Mensagens inválidas ou que falham vão para a DLQ.`,
	RunE: runWorker,
}

func runWorker(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if cfg.RabbitMQ.URL == "" || cfg.Database.URL == "" {
		return errors.New("worker precisa de RABBITMQ_URL e DATABASE_URL")
	}

	db, err := connectDatabase(ctx, logger)
	if err != nil {
		return fmt.Errorf("falha ao conectar no banco: %w", err)
	}
	defer db.Close()

	mq, _, err := connectRabbitMQ(logger)
	if err != nil {
		return fmt.Errorf("falha ao conectar no RabbitMQ: %w", err)
	}
	defer mq.Close()

	recorder := usecase.NewHistoryRecorder(database.NewStageTransitionRepository(db), newNotifier(), logger)
	worker := queue.NewWorker(mq.Ch, recorder, logger)

	logger.Info("history worker started", zap.String("queue", queue.QueueName))
	return worker.Start(ctx, queue.QueueName)
}

// newNotifier devolve nil (sem e-mail) quando o SMTP não está configurado.
func newNotifier() usecase.StageChangeNotifier {
	if cfg.Mail.Host == "" {
		return nil
	}
	return mail.NewNotifier(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Pass, cfg.Mail.From)
}
