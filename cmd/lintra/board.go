package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xavierca1/lintra-console/internal/tui"
)

var (
	boardFunnel  string
	boardLogFile string
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Abre o quadro Kanban no terminal",
	Long: `Quadro em tela cheia: ←/→ troca de coluna, ↑/↓ de card, espaço pega e
solta o card na coluna focada, esc cancela o arraste. O movimento aparece na hora
e é sincronizado em segundo plano; se o servidor recusar, o card volta.`,
	RunE: runBoard,
}

func init() {
	boardCmd.Flags().StringVar(&boardFunnel, "funnel", "", "id do funil (padrão: o primeiro)")
	boardCmd.Flags().StringVar(&boardLogFile, "log-file", "", "grava o log em arquivo enquanto o quadro está aberto")
}

func runBoard(cmd *cobra.Command, args []string) error {
	// a tela cheia não convive com log no terminal
	log := zap.NewNop()
	if boardLogFile != "" {
		l, err := cfg.NewLogger(boardLogFile)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer l.Sync()
		log = l
	}

	mq, publisher, err := connectRabbitMQ(log)
	if err != nil {
		return fmt.Errorf("falha ao conectar no RabbitMQ: %w", err)
	}
	if mq != nil {
		defer mq.Close()
	}

	a := newApp(publisher, log)
	funnelID := boardFunnel
	load := func(ctx context.Context) error {
		f, err := a.loadFunnel(ctx, funnelID)
		if err == nil {
			funnelID = f.ID
		}
		return err
	}
	return tui.Run(cmd.Context(), a.board, load)
}
