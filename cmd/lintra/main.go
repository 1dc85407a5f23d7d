package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xavierca1/lintra-console/internal/config"
)

var (
	cfgPath string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lintra",
	Short: "Console do CRM Lintra: quadro Kanban, API local e worker de histórico",
	Long: `lintra conversa com a API do CRM Lintra.

  serve   sobe a API local do console (quadro, funis, clientes, posts)
  board   abre o quadro Kanban no terminal
  worker  consome os eventos do quadro e grava o histórico de etapas
  funnels lista os funis
  deals   lista, move e resume oportunidades`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("falha ao carregar configuração: %w", err)
		}
		if logger != nil {
			return nil
		}
		logger, err = cfg.NewLogger()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "arquivo de configuração yaml")
	rootCmd.AddCommand(serveCmd, boardCmd, workerCmd, funnelsCmd, dealsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
