package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"weekendly/internal/model"
	"weekendly/internal/notify"
	"weekendly/internal/timefmt"
)

// parseHourArg accepts "14" or "2:00 PM".
func parseHourArg(s string) (int, error) {
	if h, err := strconv.Atoi(s); err == nil {
		if !timefmt.Valid(h) {
			return 0, fmt.Errorf("hour %d is outside 0-23", h)
		}
		return h, nil
	}
	return timefmt.ParseHour(s)
}

func addPlace(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "place <day> <activity-id> <hour>",
		Short: "Add a catalog activity to the plan.",
		Long: "Add a catalog activity to the plan. Activities already on that day which\n" +
			"overlap the new one are pushed later until nothing overlaps.",
		Example: `
weekendly place saturday brunch "9:00 AM"
weekendly place sunday hiking 14
`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := model.ParseDay(args[0])
			if err != nil {
				return err
			}
			hour, err := parseHourArg(args[2])
			if err != nil {
				return err
			}

			a, err := openApp(ro, notify.Log{})
			if err != nil {
				return err
			}
			defer a.Close()

			it, err := a.planner.Place(day, args[1], hour)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "placed %s on %s, %s (%s)\n",
				it.Activity.Name, day.Title(), timefmt.FormatRange(it.StartHour, it.Activity.Duration), it.ID)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove a planned activity by id (see 'weekendly show').",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(ro, notify.Log{})
			if err != nil {
				return err
			}
			defer a.Close()

			if !a.planner.Remove(args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "no item %s; nothing removed\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addClear(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every planned activity from both days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(ro, notify.Log{})
			if err != nil {
				return err
			}
			defer a.Close()

			n := a.planner.Snapshot().Len()
			a.planner.Clear()
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %d activities\n", n)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}
