package main

import (
	"fmt"
	"text/tabwriter"

	"Truss/internal/calc/flexure"
	"Truss/internal/calc/loads"

	"github.com/spf13/cobra"
)

func newFlexureCmd(opts *options) *cobra.Command {
	var (
		in     flexure.Input
		method string
	)
	cmd := &cobra.Command{
		Use:   "flexure",
		Short: "Check a simply supported span in bending",
		Long: `Compare the factored midspan moment of a dead line load plus a live point
load with the yield moment of a solid rectangular section of the given area.

Examples:
  trusscalc flexure --span 10 --area 0.01 --live 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Method = loads.Method(method)
			res, err := flexure.CalculateWith(in, opts.material)
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Dead load\t%.4f kN/m\n", res.DeadLoadKNM)
			fmt.Fprintf(w, "Dead moment\t%.4f kN·m\n", res.DeadMomentKNM)
			fmt.Fprintf(w, "Live moment\t%.4f kN·m\n", res.LiveMomentKNM)
			fmt.Fprintf(w, "Demand (%s)\t%.4f kN·m\n", res.ComboName, res.DemandMomentKNM)
			fmt.Fprintf(w, "Section modulus\t%.6g m³\n", res.SectionModulusM3)
			fmt.Fprintf(w, "Capacity\t%.4f kN·m\n", res.CapacityMomentKNM)
			fmt.Fprintf(w, "Utilisation\t%.3f\n", res.Utilization)
			fmt.Fprintf(w, "Safe\t%s\n", yesNo(res.Safe))
			return w.Flush()
		},
	}
	f := cmd.Flags()
	f.Float64VarP(&in.SpanM, "span", "s", 0, "Span (m) [required]")
	f.Float64VarP(&in.AreaM2, "area", "a", 0, "Member cross-sectional area (m²) [required]")
	f.Float64Var(&in.LiveLoadKN, "live", 0, "Live point load at midspan (kN)")
	f.Float64Var(&in.DeadLoadKNM, "dead", 0, "Dead line load (kN/m); 0 uses member self-weight")
	f.Float64Var(&in.FyMPa, "fy", 0, "Yield stress (MPa); 0 uses the configured material")
	f.StringVar(&method, "method", string(loads.MethodLRFD), "Load combination: LRFD, ASD or EC0")
	cmd.MarkFlagRequired("span")
	cmd.MarkFlagRequired("area")
	return cmd
}
