package main

import (
	"encoding/json"
	"io"

	"Truss/internal/calc/material"
	"Truss/internal/config"
	"Truss/internal/truss"

	"github.com/spf13/cobra"
)

type options struct {
	json     bool
	envFile  string
	material material.Material
	solver   truss.Solver
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "trusscalc",
		Short: "Linear static analysis of ladder truss bridges",
		Long: `trusscalc runs the calculations of the truss service from the command line.

Material constants default to structural steel and can be overridden by the
same environment variables the server reads (MATERIAL_E_GPA, MATERIAL_FY_MPA,
MATERIAL_DENSITY, GRAVITY, SOLVER_MAX_CONDITION), optionally from a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.envFile)
			if err != nil {
				return err
			}
			if err := cfg.Material.Validate(); err != nil {
				return err
			}
			opts.material = cfg.Material
			opts.solver = truss.Solver{MaxCondition: cfg.MaxCondition}
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "Print the result as JSON")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Optional file with environment overrides")

	root.AddCommand(newBridgeCmd(opts), newFlexureCmd(opts), newLoadsCmd(opts))
	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
