// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var (
	cfgPath string // Path to the configuration file

	rootCmd = &cobra.Command{
		Use:   "go-scaffold",
		Short: "go-scaffold is a template application with layered configuration and PostgreSQL storage",
		Long: `go-scaffold is a template application demonstrating layered
configuration resolution (defaults, config file, .env, environment)
and a pooled, migration-aware PostgreSQL access layer.`,
		Args:         cobra.OnlyValidArgs,
		SilenceUsage: true,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to the config file (default config.toml)")

	rootCmd.AddCommand(dbCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
