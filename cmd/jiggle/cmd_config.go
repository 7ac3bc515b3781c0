package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/nvandessel/jiggle/internal/config"
	"github.com/nvandessel/jiggle/internal/constants"
	"github.com/nvandessel/jiggle/internal/pathutil"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage jiggle configuration",
		Long: `View and modify jiggle configuration settings.

Configuration is read from ~/.jiggle/config.yaml (global) and then
./.jiggle/config.yaml (local), with JIGGLE_* environment variables applied
last. "set" writes the global file unless --scope local is given.

Examples:
  jiggle config list                           # Show effective settings
  jiggle config get chain.steps                # Get a specific setting
  jiggle config set chain.steps 50000          # Set a global setting
  jiggle config set chain.seed 7 --scope local # Set a project setting`,
	}

	cmd.PersistentFlags().String("scope", string(constants.ScopeBoth), "Config scope: local, global, or both (read only)")

	cmd.AddCommand(
		newConfigListCmd(),
		newConfigGetCmd(),
		newConfigSetCmd(),
	)

	return cmd
}

// scopedConfig loads the configuration a config subcommand operates on. For
// "both" it is the effective merged configuration; otherwise it is the single
// file for that scope laid over the defaults.
func scopedConfig(cmd *cobra.Command) (*config.JiggleConfig, constants.Scope, error) {
	root, _ := cmd.Flags().GetString("root")
	scopeFlag, _ := cmd.Flags().GetString("scope")
	scope := constants.Scope(scopeFlag)
	if !scope.Valid() {
		return nil, scope, fmt.Errorf("invalid scope %q (valid: local, global, both)", scopeFlag)
	}

	if scope == constants.ScopeBoth {
		cfg, err := config.Load(root)
		if err != nil {
			return nil, scope, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, scope, nil
	}

	path, err := config.Path(scope, root)
	if err != nil {
		return nil, scope, err
	}
	cfg, err := config.LoadFromFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), scope, nil
	}
	if err != nil {
		return nil, scope, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, scope, nil
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()

			cfg, scope, err := scopedConfig(cmd)
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(out).Encode(cfg)
			}
			fmt.Fprintf(out, "Configuration (scope: %s):\n", scope)
			for _, key := range config.Keys() {
				value, _ := cfg.Get(key)
				fmt.Fprintf(out, "  %-22s %v\n", key+":", value)
			}
			return nil
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()
			key := args[0]

			cfg, _, err := scopedConfig(cmd)
			if err != nil {
				return err
			}

			value, found := cfg.Get(key)
			if !found {
				return fmt.Errorf("unknown configuration key: %s (valid: %v)", key, config.Keys())
			}

			if jsonOut {
				return json.NewEncoder(out).Encode(map[string]any{
					"key":   key,
					"value": value,
				})
			}
			fmt.Fprintf(out, "%s = %v\n", key, value)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()
			key, value := args[0], args[1]

			if !cmd.Flags().Changed("scope") {
				if err := cmd.Flags().Set("scope", string(constants.ScopeGlobal)); err != nil {
					return err
				}
			}
			cfg, scope, err := scopedConfig(cmd)
			if err != nil {
				return err
			}
			if scope == constants.ScopeBoth {
				return fmt.Errorf("config set needs --scope local or global")
			}

			if err := cfg.Set(key, value); err != nil {
				return err
			}

			root, _ := cmd.Flags().GetString("root")
			path, err := config.Path(scope, root)
			if err != nil {
				return err
			}
			dirs, err := pathutil.ConfigDirs(root)
			if err != nil {
				return err
			}
			if err := pathutil.ValidatePath(path, dirs); err != nil {
				return err
			}
			if err := config.Save(cfg, path); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(out).Encode(map[string]any{
					"status": "updated",
					"key":    key,
					"value":  value,
					"path":   path,
				})
			}
			fmt.Fprintf(out, "Set %s = %s (%s)\n", key, value, path)
			return nil
		},
	}
}

