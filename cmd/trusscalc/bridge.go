package main

import (
	"fmt"
	"text/tabwriter"

	"Truss/internal/calc/bridge"
	"Truss/internal/calc/loads"

	"github.com/spf13/cobra"
)

func newBridgeCmd(opts *options) *cobra.Command {
	var (
		in      bridge.Input
		method  string
		load    float64
		members bool
	)
	cmd := &cobra.Command{
		Use:   "bridge",
		Short: "Analyse a ladder truss bridge and check its span in bending",
		Long: `Build a ladder truss with the given number of panel lines, solve it by the
direct stiffness method and check the span as a simply supported beam.

The bottom end nodes are pinned. A horizontal point load acts at the top of
the last panel line.

Examples:
  # 5 panel lines over 20 m, 2.5 m deep, 100 cm² members, 50 kN at midspan
  trusscalc bridge --panels 5 --length 20 --height 2.5 --area 0.01 --live 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Method = loads.Method(method)
			if cmd.Flags().Changed("truss-load") {
				in.TrussLoadKN = &load
			}
			res, err := bridge.NewCalculator(opts.material, opts.solver).Calculate(in)
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			printBridge(cmd, in, res, members)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVarP(&in.PanelCount, "panels", "n", 0, "Number of panel lines (>= 2) [required]")
	f.Float64VarP(&in.LengthM, "length", "l", 0, "Bridge length (m); 0 gives 1 m panels")
	f.Float64Var(&in.HeightM, "height", 0, "Truss depth (m); 0 gives 1 m")
	f.Float64VarP(&in.AreaM2, "area", "a", 0, "Member cross-sectional area (m²) [required]")
	f.Float64Var(&in.LiveLoadKN, "live", 0, "Live point load at midspan (kN)")
	f.Float64Var(&in.DeadLoadKNM, "dead", 0, "Dead line load (kN/m); 0 uses member self-weight")
	f.Float64Var(&load, "truss-load", bridge.DefaultTrussLoadKN, "Point load on the truss model (kN)")
	f.Float64Var(&in.E_GPa, "e", 0, "Elastic modulus (GPa); 0 uses the configured material")
	f.Float64Var(&in.FyMPa, "fy", 0, "Yield stress (MPa); 0 uses the configured material")
	f.StringVar(&method, "method", string(loads.MethodLRFD), "Load combination: LRFD, ASD or EC0")
	f.BoolVar(&members, "members", false, "List every member")
	cmd.MarkFlagRequired("panels")
	cmd.MarkFlagRequired("area")
	return cmd
}

func printBridge(cmd *cobra.Command, in bridge.Input, res bridge.Result, members bool) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "LADDER TRUSS, %d PANEL LINES, %d MEMBERS\n", in.PanelCount, len(res.Members))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Max |stress|\t%.3f MPa\n", res.MaxStressMPa)
	fmt.Fprintf(w, "Max displacement\t%.4f mm\n", res.MaxDisplacementMM)
	fmt.Fprintf(w, "Max buckling utilisation\t%.3f\n", res.MaxBucklingUtil)
	fmt.Fprintf(w, "Members OK\t%s\n", yesNo(res.MembersOK))
	fmt.Fprintf(w, "Demand moment (%s)\t%.3f kN·m\n", res.Flexure.ComboName, res.Flexure.DemandMomentKNM)
	fmt.Fprintf(w, "Capacity moment\t%.3f kN·m\n", res.Flexure.CapacityMomentKNM)
	fmt.Fprintf(w, "Flexural utilisation\t%.3f\n", res.Flexure.Utilization)
	fmt.Fprintf(w, "Safe\t%s\n", yesNo(res.Safe))
	w.Flush()

	if len(res.Reactions) > 0 {
		fmt.Fprintln(out)
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "Node\tDir\tReaction (kN)\t")
		for _, r := range res.Reactions {
			fmt.Fprintf(w, "%d\t%s\t%.4f\t\n", r.Node, r.Direction, r.ForceKN)
		}
		w.Flush()
	}

	if members {
		fmt.Fprintln(out)
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "#\tNodes\tL (m)\tσ (MPa)\tN (kN)\tBuckling\t")
		for _, m := range res.Members {
			fmt.Fprintf(w, "%d\t%d-%d\t%.3f\t%.4f\t%.4f\t%.3f\t\n",
				m.Index, m.Start, m.End, m.LengthM, m.StressMPa, m.ForceKN, m.BucklingUtilization)
		}
		w.Flush()
	}
}

func yesNo(ok bool) string {
	if ok {
		return "YES"
	}
	return "NO"
}
