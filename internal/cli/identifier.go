package cli

import (
	"github.com/spf13/cobra"

	"github.com/taichi6930/race-schedule-api-sub006/internal/api/response"
	"github.com/taichi6930/race-schedule-api-sub006/internal/civiltime"
	"github.com/taichi6930/race-schedule-api-sub006/internal/model"
)

func newIDCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "id",
		Short: "Encode and decode schedule identifiers locally",
	}

	cmd.AddCommand(newIDEncodeCmd())
	cmd.AddCommand(newIDDecodeCmd())

	return cmd
}

func newIDEncodeCmd() *cobra.Command {
	var (
		raceType string
		date     string
		venue    int
		race     int
		position int
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Build an identifier from its components",
		Long: `Build a place identifier, or a race identifier with --race, or a race
player identifier with --race and --position.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := model.ParseRaceKind(raceType)
			if err != nil {
				return err
			}
			d, err := civiltime.ParseDate(date)
			if err != nil {
				return err
			}

			id, err := model.Encode(model.Components{
				Kind:     kind,
				Date:     d,
				Venue:    model.VenueCode(venue),
				Race:     model.RaceNumber(race),
				Position: model.PositionNumber(position),
			})
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(IDResult{ID: id})
			return nil
		},
	}

	cmd.Flags().StringVar(&raceType, "type", "", "Race type (jra, nar, overseas, keirin, boatrace, autorace)")
	cmd.Flags().StringVar(&date, "date", "", "Date as YYYY-MM-DD")
	cmd.Flags().IntVar(&venue, "venue", 0, "Venue code")
	cmd.Flags().IntVar(&race, "race", 0, "Race number")
	cmd.Flags().IntVar(&position, "position", 0, "Position number")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("venue")

	return cmd
}

func newIDDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <id>",
		Short: "Split an identifier into its components",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := model.ParseAnyID(args[0])
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(response.IdentifierFromComponents(args[0], c))
			return nil
		},
	}
}
