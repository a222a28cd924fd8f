package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/taichi6930/race-schedule-api-sub006/internal/api/response"
)

// searchFlags are the query options shared by list and export commands
type searchFlags struct {
	raceTypes []string
	from      string
	to        string
	location  string
	grade     string
	stage     string
}

func (f *searchFlags) register(cmd *cobra.Command, races bool) {
	cmd.Flags().StringSliceVar(&f.raceTypes, "type", nil, "Race types to include (repeatable, default all)")
	cmd.Flags().StringVar(&f.from, "from", "", "First date, YYYY-MM-DD (default start of this month)")
	cmd.Flags().StringVar(&f.to, "to", "", "Last date, YYYY-MM-DD (default end of this month)")
	cmd.Flags().StringVar(&f.location, "location", "", "Location name")
	if races {
		cmd.Flags().StringVar(&f.grade, "grade", "", "Grade")
		cmd.Flags().StringVar(&f.stage, "stage", "", "Stage")
	}
}

func (f *searchFlags) query() string {
	q := url.Values{}
	for _, t := range f.raceTypes {
		q.Add("raceType", t)
	}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("startDate", f.from)
	set("finishDate", f.to)
	set("location", f.location)
	set("grade", f.grade)
	set("stage", f.stage)

	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func newPlacesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "places",
		Short: "Query and manage race places (venue days)",
	}

	cmd.AddCommand(newPlacesListCmd())
	cmd.AddCommand(newPlacesGetCmd())
	cmd.AddCommand(newDeleteCmd("place", "/api/v1/places/", "Delete a place and its races"))

	return cmd
}

func newPlacesListCmd() *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List places in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.PlaceList

			if err := client.Get("/api/v1/places"+flags.query(), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	flags.register(cmd, false)

	return cmd
}

func newPlacesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a place by identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Place

			if err := client.Get("/api/v1/places/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newRacesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "races",
		Short: "Query and manage races",
	}

	cmd.AddCommand(newRacesListCmd())
	cmd.AddCommand(newRacesGetCmd())
	cmd.AddCommand(newDeleteCmd("race", "/api/v1/races/", "Delete a race"))

	return cmd
}

func newRacesListCmd() *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List races in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.RaceList

			if err := client.Get("/api/v1/races"+flags.query(), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	flags.register(cmd, true)

	return cmd
}

func newRacesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a race by identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Race

			if err := client.Get("/api/v1/races/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

// newDeleteCmd removes one entity by identifier. Requires an API key.
func newDeleteCmd(entity, path, short string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(path + url.PathEscape(args[0])); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(DeleteResult{Entity: entity, ID: args[0]})
			return nil
		},
	}
}
