package main

import (
	"encoding/json"
	"fmt"

	"github.com/nvandessel/jiggle/internal/models"
	"github.com/spf13/cobra"
)

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List built-in models",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()
			all := models.All()

			if jsonOut {
				return json.NewEncoder(out).Encode(all)
			}
			for _, b := range all {
				fmt.Fprintf(out, "%-18s %s\n", b.Name, b.Description)
				if b.UsesData {
					fmt.Fprintf(out, "%-18s accepts --data (default: %d observations)\n", "", len(b.DefaultData))
				}
			}
			return nil
		},
	}
}
