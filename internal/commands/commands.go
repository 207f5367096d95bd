// Package commands wires the weekendly CLI.
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"weekendly/internal/catalog"
	"weekendly/internal/config"
	appLog "weekendly/internal/log"
	"weekendly/internal/notify"
	"weekendly/internal/persist"
	"weekendly/internal/planner"
	"weekendly/internal/poster"
)

const defaultConfigPath = "~/.weekendly/config.yaml"

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
}

// New returns the root command with every subcommand attached.
func New() *cobra.Command {
	ro := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "weekendly",
		Short:         "Plan a Saturday and Sunday of activities.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&ro.configPath, "config", defaultConfigPath, "Path to the YAML config file.")
	cmd.PersistentFlags().StringVar(&ro.logLevel, "log-level", "", "Override log_level from the config (debug, info, warn, error).")

	addCommands(cmd, ro)
	return cmd
}

func addCommands(topLevel *cobra.Command, ro *rootOptions) {
	addServe(topLevel, ro)
	addExport(topLevel, ro)
	addSummary(topLevel, ro)
	addShow(topLevel, ro)
	addCatalog(topLevel, ro)
	addPlace(topLevel, ro)
	addRemove(topLevel, ro)
	addClear(topLevel, ro)
	addHashPassword(topLevel)
	addVersion(topLevel)
}

// app is everything a command needs to read or change the stored plan.
type app struct {
	cfg     *config.Config
	dataDir string
	catalog *catalog.Catalog
	store   *persist.Adapter
	planner *planner.Planner
}

// openApp loads config, catalog and storage and restores the plan. Callers
// must Close it.
func openApp(ro *rootOptions, n notify.Notifier) (*app, error) {
	cfg, err := config.Load(ro.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", ro.configPath, err)
	}
	level := cfg.LogLevel
	if ro.logLevel != "" {
		level = ro.logLevel
	}
	appLog.SetLevel(appLog.ParseLevel(level))

	dataDir, err := cfg.ResolvedDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	kv, err := persist.Open(cfg.Storage, dataDir)
	if err != nil {
		return nil, err
	}
	store := persist.NewAdapter(kv)

	return &app{
		cfg:     cfg,
		dataDir: dataDir,
		catalog: cat,
		store:   store,
		planner: planner.New(cat, store, n),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// exporter builds the poster exporter from the poster config section.
func (a *app) exporter() *poster.Exporter {
	return poster.NewExporter(poster.Options{
		GridStart: a.cfg.GridStart,
		GridEnd:   a.cfg.GridEnd,
		Theme:     a.cfg.Theme,
		Width:     a.cfg.Poster.Width,
		Height:    a.cfg.Poster.Height,
		Scale:     a.cfg.Poster.Scale,
		Timeout:   time.Duration(a.cfg.Poster.TimeoutSeconds) * time.Second,
	})
}
