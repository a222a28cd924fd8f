package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/taichi6930/race-schedule-api-sub006/internal/civiltime"
)

func newTimeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Normalize datetimes to JST representations",
		Long: `Parse a datetime and print it in a JST representation. Input without a
zone is read as JST wall-clock time.`,
	}

	cmd.AddCommand(newTimeFormatCmd("storage", "Print as YYYY-MM-DD HH:mm:ss", civiltime.FormatStorage))
	cmd.AddCommand(newTimeFormatCmd("iso", "Print as ISO-8601 with +09:00", civiltime.FormatISO))

	return cmd
}

func newTimeFormatCmd(use, short string, format func(time.Time) string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <datetime>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := civiltime.ParseAssumingCivil(args[0])
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(TimeResult{Input: args[0], Formatted: format(t)})
			return nil
		},
	}
}
