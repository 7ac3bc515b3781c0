package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nvandessel/jiggle/internal/config"
	"github.com/nvandessel/jiggle/internal/constants"
	"github.com/nvandessel/jiggle/internal/logging"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jiggle",
		Short: "Random-walk Metropolis-Hastings for small generative models",
		Long: `jiggle runs single-site Metropolis-Hastings chains over generative
models built from uniform, normal and exponential random variables.

Each transition re-runs the model, nudges every latent site by a small
normal step and accepts or rejects the move on the joint log probability.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("root", ".", "Project root directory")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug, or trace (overrides config)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newModelsCmd(),
		newDistsCmd(),
		newPDFCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

// loadConfig loads configuration for the --root project and applies the
// global --log-level flag.
func loadConfig(cmd *cobra.Command) (*config.JiggleConfig, string, error) {
	root, _ := cmd.Flags().GetString("root")
	cfg, err := config.Load(root)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid config: %w", err)
	}
	return cfg, root, nil
}

// newLogger builds the operational logger. Logs go to w, keeping stdout for
// command output.
func newLogger(cfg *config.JiggleConfig, w io.Writer) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, cfg.Logging.Format, w)
}

// decisionDir is where the decision log for a project is written.
func decisionDir(root string) string {
	return filepath.Join(root, constants.ConfigDirName)
}
