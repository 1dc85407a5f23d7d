package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xavierca1/lintra-console/internal/usecase"
)

var dealsFunnel string

var dealsCmd = &cobra.Command{
	Use:   "deals",
	Short: "Oportunidades do funil",
}

var dealsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lista as oportunidades por etapa",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(nil, logger)
		f, err := a.loadFunnel(cmd.Context(), dealsFunnel)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "%s\n\n", f.Name)
		fmt.Fprintln(w, "ETAPA\tID\tTÍTULO\tVALOR\tPREVISÃO")
		for _, col := range a.board.Columns() {
			for _, d := range col.Deals {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					col.Stage.Name, d.ID, d.Title, usecase.FormatBRL(d.Value), usecase.FormatShortDate(d.ExpectedClose))
			}
			fmt.Fprintf(w, "%s\t\t%d oportunidade(s)\t%s\t\n", col.Stage.Name, col.Count, usecase.FormatBRL(col.Total))
		}
		return w.Flush()
	},
}

var dealsMoveCmd = &cobra.Command{
	Use:   "move <deal-id> <stage-id>",
	Short: "Move uma oportunidade para outra etapa",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mq, publisher, err := connectRabbitMQ(logger)
		if err != nil {
			return fmt.Errorf("falha ao conectar no RabbitMQ: %w", err)
		}
		if mq != nil {
			defer mq.Close()
		}

		a := newApp(publisher, logger)
		if _, err := a.loadFunnel(cmd.Context(), dealsFunnel); err != nil {
			return err
		}
		dealID, target := args[0], args[1]
		d, ok := a.store.Deal(dealID)
		if !ok {
			return fmt.Errorf("oportunidade %s não encontrada no funil", dealID)
		}
		if err := a.board.BeginDrag(d.ID, d.StageID); err != nil {
			return err
		}
		if err := a.board.CompleteDrag(cmd.Context(), target); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s movida para %s\n", d.Title, target)
		return nil
	},
}

var dealsSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Resumo do funil: valores, conversão e maiores oportunidades",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(nil, logger)
		f, err := a.loadFunnel(cmd.Context(), dealsFunnel)
		if err != nil {
			return err
		}
		s := usecase.Summarize(f, a.store.Deals(f.ID))

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d oportunidade(s), %s no total\n", f.Name, s.TotalDeals, usecase.FormatBRL(s.TotalValue))
		fmt.Fprintf(out, "Em aberto %s · Fechado %s · Conversão %.1f%% · Ticket médio %s\n\n",
			usecase.FormatBRL(s.OpenValue), usecase.FormatBRL(s.ClosedValue), s.ConversionRate, usecase.FormatBRL(s.AverageTicket))

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ETAPA\tQTD\tVALOR\t%")
		for _, st := range s.Stages {
			fmt.Fprintf(w, "%s\t%d\t%s\t%.0f\n", st.Stage.Name, st.Count, usecase.FormatBRL(st.Value), st.Share)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if len(s.TopDeals) > 0 {
			fmt.Fprintln(out, "\nMaiores oportunidades:")
			for _, d := range s.TopDeals {
				fmt.Fprintf(out, "  %s  %s\n", usecase.FormatBRL(d.Value), d.Title)
			}
		}
		return nil
	},
}

func init() {
	dealsCmd.PersistentFlags().StringVar(&dealsFunnel, "funnel", "", "id do funil (padrão: o primeiro)")
	dealsCmd.AddCommand(dealsListCmd, dealsMoveCmd, dealsSummaryCmd)
}
