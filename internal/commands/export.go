package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"weekendly/internal/ics"
	appLog "weekendly/internal/log"
	"weekendly/internal/notify"
	"weekendly/internal/persist"
	"weekendly/internal/poster"
)

// exportOptions are the flags of the export command.
type exportOptions struct {
	Format    string
	Out       string
	Recurring bool
}

func (o *exportOptions) fileName() string {
	if o.Out != "" {
		return o.Out
	}
	switch o.Format {
	case "json":
		return persist.ExportFileName
	case "ics":
		return ics.FileName
	default:
		return poster.FileName
	}
}

func addExport(topLevel *cobra.Command, ro *rootOptions) {
	eo := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the plan as a poster, JSON or calendar file.",
		Example: `
weekendly export
weekendly export --format json --out plan.json
weekendly export --format ics --recurring
weekendly export --format json --out -
`,
		Args: cobra.NoArgs,
		PreRunE: func(*cobra.Command, []string) error {
			switch eo.Format {
			case "png", "json", "ics":
				return nil
			default:
				return fmt.Errorf("unknown format %q, want png, json or ics", eo.Format)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(ro, notify.Log{})
			if err != nil {
				return err
			}
			defer a.Close()

			data, err := renderExport(cmd.Context(), a, eo)
			if err != nil {
				appLog.Error("export failed", err, "format", eo.Format)
				return err
			}

			name := eo.fileName()
			if name == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(name, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", name, len(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&eo.Format, "format", "f", "png", "Export format. One of 'png', 'json' or 'ics'.")
	cmd.Flags().StringVarP(&eo.Out, "out", "o", "", "Output file; '-' writes to stdout. Defaults to weekend-plan.<format>.")
	cmd.Flags().BoolVar(&eo.Recurring, "recurring", false, "Repeat calendar events every week (ics only).")

	topLevel.AddCommand(cmd)
}

func renderExport(ctx context.Context, a *app, eo *exportOptions) ([]byte, error) {
	snap := a.planner.Snapshot()
	var buf bytes.Buffer
	switch eo.Format {
	case "json":
		if err := persist.WriteExport(&buf, snap); err != nil {
			return nil, err
		}
	case "ics":
		loc, err := a.cfg.Location()
		if err != nil {
			return nil, err
		}
		opts := ics.ExportOptions{Now: time.Now(), Location: loc, Recurring: eo.Recurring}
		if err := ics.Write(&buf, snap, opts); err != nil {
			return nil, err
		}
	default:
		if ctx == nil {
			ctx = context.Background()
		}
		return a.exporter().Render(ctx, snap)
	}
	return buf.Bytes(), nil
}
