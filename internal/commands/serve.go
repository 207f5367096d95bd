package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"weekendly/internal/jobs"
	appLog "weekendly/internal/log"
	"weekendly/internal/notify"
	"weekendly/internal/web"
)

func addServe(topLevel *cobra.Command, ro *rootOptions) {
	listen := ""

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planner UI and API.",
		Example: `
weekendly serve
weekendly serve --listen 0.0.0.0:8080
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			queue := notify.NewQueue(notify.DefaultTTL)
			a, err := openApp(ro, queue)
			if err != nil {
				return err
			}
			defer a.Close()

			// --listen overrides the config file if provided.
			if listen != "" {
				a.cfg.Listen = listen
			}

			appLog.Info("effective config",
				"listen", a.cfg.Listen,
				"data_dir", a.dataDir,
				"storage", a.cfg.Storage,
				"timezone", a.cfg.Timezone,
				"theme", a.cfg.Theme,
				"catalog", a.catalog.Len(),
				"poster_refresh", a.cfg.Poster.Refresh,
				"reset_cron", a.cfg.ResetCron,
			)

			// Root context with cancellation on SIGINT/SIGTERM.
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				select {
				case sig := <-sigCh:
					appLog.Info("signal received, shutting down", "signal", sig.String())
					cancel()
				case <-ctx.Done():
				}
			}()

			exporter := a.exporter()
			runner, err := jobs.New(ctx, jobs.Config{
				PosterRefresh: a.cfg.Poster.Refresh,
				ResetCron:     a.cfg.ResetCron,
				DataDir:       a.dataDir,
				RenderTimeout: time.Duration(a.cfg.Poster.TimeoutSeconds) * time.Second,
			}, a.planner, exporter)
			if err != nil {
				return err
			}
			runner.Start()
			defer runner.Stop()

			srv := web.NewServer(a.cfg, a.dataDir, a.planner, queue, exporter)
			err = srv.Run(ctx)

			// Flush once more so a failed write earlier in the session gets
			// another chance before exit.
			if saveErr := a.store.Save(a.planner.Snapshot()); saveErr != nil {
				appLog.Error("final save failed", saveErr)
			}
			appLog.Info("weekendly exiting")
			return err
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "HTTP listen address (overrides config if set).")

	topLevel.AddCommand(cmd)
}
