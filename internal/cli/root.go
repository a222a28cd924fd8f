package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "racesched",
		Short: "CLI tool for the race schedule API",
		Long: `racesched works with race schedule identifiers and the schedule API.

The id and time commands run locally. The other commands talk to a server;
import requires an API key.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load API key from file if not provided via flag/env
			if err := cfg.LoadAPIKey(); err != nil {
				return err
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL, cfg.APIKey)
			if cfg.Verbose {
				client.SetTrace(cmd.ErrOrStderr())
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: RACESCHED_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "API key for writes (env: RACESCHED_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&cfg.APIKeyFile, "api-key-file", cfg.APIKeyFile, "API key file path (env: RACESCHED_API_KEY_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Local commands
	rootCmd.AddCommand(newIDCmd())
	rootCmd.AddCommand(newTimeCmd())
	rootCmd.AddCommand(newAPIKeyCmd())

	// Server commands
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newPlacesCmd())
	rootCmd.AddCommand(newRacesCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newExportCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		NewOutput(cfg.Output, os.Stderr).PrintError(err)
		os.Exit(1)
	}
}
