package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/taichi6930/race-schedule-api-sub006/internal/api/response"
	"github.com/taichi6930/race-schedule-api-sub006/internal/services/csvio"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <place|race> <file>",
		Short: "Upload a CSV file of places or races",
		Long: `Upload a CSV file. Places must be imported before the races held at
them. The whole file is rejected if any row is invalid. Requires an API key.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entity, err := csvio.ParseEntity(args[0])
			if err != nil {
				return err
			}

			file, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer file.Close()

			var result response.ImportResult
			if err := client.PostCSV("/api/v1/import/"+string(entity), file, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	var (
		flags  searchFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "export <place|race>",
		Short: "Download places or races as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entity, err := csvio.ParseEntity(args[0])
			if err != nil {
				return err
			}

			data, err := client.GetRaw("/api/v1/export/" + string(entity) + flags.query())
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(output, data, 0o644)
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVar(&output, "file", "", "Write to this file instead of stdout")

	return cmd
}
