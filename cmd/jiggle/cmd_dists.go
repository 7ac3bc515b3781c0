package main

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nvandessel/jiggle/internal/dist"
	"github.com/spf13/cobra"
)

func newDistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dists",
		Short: "List distribution families and their parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()

			if jsonOut {
				type family struct {
					Name   string   `json:"name"`
					Params []string `json:"params"`
				}
				list := make([]family, 0, len(dist.Families()))
				for _, f := range dist.Families() {
					list = append(list, family{Name: f.String(), Params: f.ParamNames()})
				}
				return json.NewEncoder(out).Encode(list)
			}
			for _, f := range dist.Families() {
				fmt.Fprintf(out, "%s(%s)\n", f, strings.Join(f.ParamNames(), ", "))
			}
			return nil
		},
	}
}

func newPDFCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pdf <family> <x> <params...>",
		Short: "Evaluate a density and log density",
		Long: `Evaluate the density of a distribution family at x.

Examples:
  jiggle pdf normal 0.5 0 1
  jiggle pdf exponential 2 0.5
  jiggle pdf uniform 3 0 1      # outside the support: density 0, log density -Inf`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()

			fam, err := dist.Parse(args[0])
			if err != nil {
				return err
			}
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid x %q: %w", args[1], err)
			}
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return fmt.Errorf("x must be finite, got %v", x)
			}
			params := make([]float64, 0, len(args)-2)
			for _, a := range args[2:] {
				p, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return fmt.Errorf("invalid parameter %q: %w", a, err)
				}
				if math.IsNaN(p) || math.IsInf(p, 0) {
					return fmt.Errorf("parameter %q must be finite", a)
				}
				params = append(params, p)
			}
			if err := fam.ValidateParams(params); err != nil {
				return err
			}

			density := fam.PDF(x, params)
			logDensity := fam.LogPDF(x, params)
			if jsonOut {
				// JSON has no -Inf; outside the support log_density is null.
				var lp any = logDensity
				if math.IsInf(logDensity, -1) {
					lp = nil
				}
				return json.NewEncoder(out).Encode(map[string]any{
					"family":      fam.String(),
					"x":           x,
					"params":      params,
					"density":     density,
					"log_density": lp,
				})
			}
			fmt.Fprintf(out, "%s(%s) at x=%g\n", fam, formatParams(params), x)
			fmt.Fprintf(out, "  density:     %g\n", density)
			fmt.Fprintf(out, "  log density: %g\n", logDensity)
			return nil
		},
	}
}

func formatParams(params []float64) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = strconv.FormatFloat(p, 'g', -1, 64)
	}
	return strings.Join(parts, ", ")
}
