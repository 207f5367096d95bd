package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"weekendly/internal/model"
	"weekendly/internal/notify"
	"weekendly/internal/schedule"
	"weekendly/internal/summary"
	"weekendly/internal/timefmt"
)

func addSummary(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print totals and the mood breakdown of the plan.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(ro, notify.Log{})
			if err != nil {
				return err
			}
			defer a.Close()

			printSummary(cmd.OutOrStdout(), summary.Compute(a.planner.Snapshot()))
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "List the planned activities with their ids.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(ro, notify.Log{})
			if err != nil {
				return err
			}
			defer a.Close()

			printSchedule(cmd.OutOrStdout(), a.planner.Snapshot())
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addCatalog(topLevel *cobra.Command, ro *rootOptions) {
	category := ""

	cmd := &cobra.Command{
		Use:   "catalog [query]",
		Short: "Search the activity catalog.",
		Example: `
weekendly catalog
weekendly catalog park --category outdoor
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(ro, notify.Log{})
			if err != nil {
				return err
			}
			defer a.Close()

			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			printActivities(cmd.OutOrStdout(), a.catalog.Search(query, category))
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "all", "Only show one category.")

	topLevel.AddCommand(cmd)
}

func printSummary(w io.Writer, s summary.Summary) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Total Activities"), s.TotalActivities)
	tbl.AddRow(bold.Sprint("Total Hours Planned"), s.TotalHours)
	for _, d := range model.Days {
		dt := s.Days[d]
		tbl.AddRow(d.Title(), fmt.Sprintf("%d activities, %dh", dt.Activities, dt.Hours))
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(w, tbl)

	if len(s.MoodHistogram) == 0 {
		return
	}
	moods := uitable.New()
	moods.Separator = "  "
	moods.AddRow(bold.Sprint("Mood"), bold.Sprint("Count"))
	for _, m := range model.Moods {
		if n := s.MoodHistogram[m]; n > 0 {
			moods.AddRow(string(m), n)
		}
	}
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, moods)
}

func printSchedule(w io.Writer, snap schedule.Snapshot) {
	bold := color.New(color.Bold, color.Underline)
	faint := color.New(color.Faint)

	for _, d := range model.Days {
		_, _ = fmt.Fprintln(w, bold.Sprint(d.Title()))
		items := snap.Day(d)
		if len(items) == 0 {
			_, _ = fmt.Fprintln(w, faint.Sprint("  nothing planned"))
			continue
		}
		sort.SliceStable(items, func(i, j int) bool { return items[i].StartHour < items[j].StartHour })

		tbl := uitable.New()
		tbl.Separator = "  "
		for _, it := range items {
			tbl.AddRow(
				timefmt.FormatRange(it.StartHour, it.Activity.Duration),
				strings.TrimSpace(it.Activity.Icon+" "+it.Activity.Name),
				faint.Sprint(it.ID),
			)
		}
		_, _ = fmt.Fprintln(w, tbl)
	}
}

func printActivities(w io.Writer, list []model.Activity) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Activity"), bold.Sprint("Category"), bold.Sprint("Hours"), bold.Sprint("Mood"))
	for _, a := range list {
		tbl.AddRow(a.ID, strings.TrimSpace(a.Icon+" "+a.Name), a.Category, a.Duration, a.Mood)
	}
	_, _ = fmt.Fprintln(w, tbl)
}
