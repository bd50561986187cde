// RoomFit places furniture in rectangular rooms.
//
// Build:
//
//	go build -o roomfit ./cmd/roomfit
//
// Usage:
//
//	roomfit demo -o living.pdf
//	roomfit place room.yaml --order "KLEA floor lamp" -o plan.layout.json
//	roomfit serve --listen :8080
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"

	"github.com/piwi3910/RoomFit/internal/assets"
	"github.com/piwi3910/RoomFit/internal/catalog"
	"github.com/piwi3910/RoomFit/internal/engine"
	"github.com/piwi3910/RoomFit/internal/model"
	"github.com/piwi3910/RoomFit/internal/project"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "roomfit:", err)
		os.Exit(1)
	}
}

// rootOptions carries the global flags and the state derived from them.
type rootOptions struct {
	configPath  string
	catalogPath string
	verbosity   int
	cellSize    float64
	searchLimit int

	config model.AppConfig
	log    logr.Logger
}

func newRootCommand() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "roomfit",
		Short: "Furniture layout planner",
		Long: `RoomFit arranges furniture in rectangular rooms. Fittings keep their
relations to walls and to each other, stay out of door and window
clearances and leave room in front of them to be used.`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := project.LoadAppConfig(o.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			o.config = cfg
			if !cmd.Flags().Changed("verbose") {
				o.verbosity = cfg.Verbosity
			}
			o.log = newLogger(cmd, o.verbosity)
			o.log.V(2).Info("loaded config", "path", o.configPath)
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&o.configPath, "config", "c", project.DefaultConfigPath(), "Path to the configuration file")
	flags.StringVar(&o.catalogPath, "catalog", "", "Fitting catalog file (XML, JSON or YAML); defaults to the configured or built-in catalog")
	flags.IntVarP(&o.verbosity, "verbose", "v", 0, "Log verbosity level (0-4)")
	flags.Float64Var(&o.cellSize, "cell-size", 0, "Floor grid resolution in metres")
	flags.IntVar(&o.searchLimit, "search-limit", 0, "Maximum candidate trials per layout, 0 = unlimited")

	cmd.AddCommand(
		newPlaceCommand(o),
		newDemoCommand(o),
		newCheckCommand(o),
		newExportCommand(o),
		newLayoutsCommand(o),
		newCatalogCommand(o),
		newTemplateCommand(o),
		newServeCommand(o),
		newConfigCommand(o),
	)
	return cmd
}

func newLogger(cmd *cobra.Command, verbosity int) logr.Logger {
	w := cmd.ErrOrStderr()
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{Verbosity: verbosity}).WithName("roomfit")
}

// loadCatalog prefers the --catalog flag, then the configured path, then
// the embedded database.
func (o *rootOptions) loadCatalog() (*model.Catalog, error) {
	path := o.catalogPath
	if path == "" {
		path = o.config.CatalogPath
	}
	if path == "" {
		return assets.DefaultCatalog()
	}
	return catalog.Load(path, o.log)
}

// settings applies the configuration and then the command line overrides.
func (o *rootOptions) settings(cmd *cobra.Command) model.Settings {
	s := model.DefaultSettings()
	o.config.ApplyToSettings(&s)
	if cmd.Flags().Changed("cell-size") {
		s.CellSize = o.cellSize
	}
	if cmd.Flags().Changed("search-limit") {
		s.SearchLimit = o.searchLimit
	}
	return s
}

func (o *rootOptions) furnisher(cmd *cobra.Command) (*engine.Furnisher, error) {
	c, err := o.loadCatalog()
	if err != nil {
		return nil, err
	}
	return engine.New(c, o.settings(cmd), engine.WithLogger(o.log.WithName("engine"))), nil
}

// templatePath and layoutsDir sit next to the configuration file.
func (o *rootOptions) templatePath() string {
	return project.PathsFor(o.configPath).Templates()
}

func (o *rootOptions) layoutsDir() string {
	return project.PathsFor(o.configPath).Layouts()
}
