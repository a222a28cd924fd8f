package cli

import (
	"github.com/spf13/cobra"

	"github.com/taichi6930/race-schedule-api-sub006/internal/dependencies/random"
	"github.com/taichi6930/race-schedule-api-sub006/internal/services/auth"
)

func newAPIKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Manage write API keys",
	}

	cmd.AddCommand(newAPIKeyGenerateCmd())

	return cmd
}

func newAPIKeyGenerateCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an API key and its bcrypt hash",
		Long: `Generate a new API key. Configure the server with the hash
(RACESCHED_API_KEY_HASH) and give the key to clients.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := auth.GenerateKey(random.New())
			if err != nil {
				return err
			}

			if save {
				if err := cfg.SaveAPIKey(key.Key); err != nil {
					return err
				}
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(APIKeyResult{Key: key.Key, Hash: key.Hash})
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Also write the key to the API key file")

	return cmd
}
