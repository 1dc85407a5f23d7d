package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var funnelsCmd = &cobra.Command{
	Use:   "funnels",
	Short: "Lista os funis e suas etapas",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(nil, logger)
		funnels, err := a.funnels.Refresh(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNOME\tETAPAS")
		for _, f := range funnels {
			names := ""
			for i, s := range f.Stages {
				if i > 0 {
					names += " → "
				}
				names += s.Name
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", f.ID, f.Name, names)
		}
		return w.Flush()
	},
}
