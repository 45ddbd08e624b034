package main

import (
	"fmt"
	"text/tabwriter"

	"Truss/internal/calc/loads"

	"github.com/spf13/cobra"
)

func newLoadsCmd(opts *options) *cobra.Command {
	var dead, live float64
	cmd := &cobra.Command{
		Use:   "loads",
		Short: "Factored design load for every supported combination",
		RunE: func(cmd *cobra.Command, args []string) error {
			methods := []loads.Method{loads.MethodLRFD, loads.MethodASD, loads.MethodEC0}
			results := make([]loads.Result, 0, len(methods))
			for _, m := range methods {
				res, err := loads.Calculate(loads.Input{Method: m, DeadKN: dead, LiveKN: live})
				if err != nil {
					return err
				}
				results = append(results, res)
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "Combination\tγD\tγL\tDesign load (kN)")
			for _, r := range results {
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.3f\n", r.ComboName, r.DeadFactor, r.LiveFactor, r.DesignLoadKN)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Float64VarP(&dead, "dead", "d", 0, "Dead load D (kN)")
	cmd.Flags().Float64VarP(&live, "live", "l", 0, "Live load L (kN)")
	return cmd
}
