package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/taichi6930/race-schedule-api-sub006/internal/api/handler"
)

// ErrWritesDisabled is returned by health --require-writes against a
// server with no API key configured
var ErrWritesDisabled = errors.New("server has writes disabled")

func newHealthCmd() *cobra.Command {
	var requireWrites bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result handler.HealthResponse
			if err := client.Get("/api/v1/health", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)

			if requireWrites && !result.Writes {
				return ErrWritesDisabled
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&requireWrites, "require-writes", false, "Fail unless the server accepts imports")
	return cmd
}
