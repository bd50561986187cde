package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/piwi3910/RoomFit/internal/assets"
	"github.com/piwi3910/RoomFit/internal/engine"
	"github.com/piwi3910/RoomFit/internal/export"
	"github.com/piwi3910/RoomFit/internal/importer"
	"github.com/piwi3910/RoomFit/internal/model"
	"github.com/piwi3910/RoomFit/internal/project"
	"github.com/piwi3910/RoomFit/internal/room"
)

// placeOptions are shared by place and demo.
type placeOptions struct {
	name      string
	order     []string
	orderFile string
	template  string
	seed      int64
	seeds     int
	outputs   []string
	tags      string
	save      bool
}

func (p *placeOptions) AddFlags(f *pflag.FlagSet) {
	f.StringVarP(&p.name, "name", "n", "", "Layout name")
	f.StringSliceVar(&p.order, "order", nil, "Fitting model ids to place, in order (replaces the room file's order)")
	f.StringVar(&p.orderFile, "order-file", "", "CSV or Excel file listing fitting models and quantities")
	f.Int64Var(&p.seed, "seed", 0, "Random seed, 0 = configured seed or time based")
	f.IntVar(&p.seeds, "seeds", 1, "Try this many consecutive seeds and keep the best layout")
	f.StringSliceVarP(&p.outputs, "output", "o", nil, "Output files; the extension picks the format (.json, .pdf, .xlsx, .dxf)")
	f.StringVar(&p.tags, "tags", "", "Write QR-coded fitting tags to this PDF")
	f.BoolVar(&p.save, "save", false, "Save the layout to the layouts directory and remember it")
}

func newPlaceCommand(o *rootOptions) *cobra.Command {
	p := &placeOptions{}
	cmd := &cobra.Command{
		Use:   "place [ROOM_FILE]",
		Short: "Generate a layout for a room",
		Long: `Place fittings in the room described by ROOM_FILE (YAML or JSON), or in
the room of a saved template. The fittings come from --order, --order-file
or the order stored with the room.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var scenario assets.Scenario
			switch {
			case len(args) == 1:
				s, err := project.LoadRoomFile(args[0])
				if err != nil {
					return err
				}
				scenario = s
			case p.template != "":
				s, err := loadTemplateScenario(o.templatePath(), p.template)
				if err != nil {
					return err
				}
				scenario = s
			default:
				return fmt.Errorf("a room file or --template is required")
			}
			return runPlace(cmd, o, p, scenario)
		},
	}
	p.AddFlags(cmd.Flags())
	cmd.Flags().StringVarP(&p.template, "template", "t", "", "Use the room and order of a saved template (name or id)")
	return cmd
}

func newDemoCommand(o *rootOptions) *cobra.Command {
	p := &placeOptions{}
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Furnish the built-in living room",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := assets.DemoScenario()
			if err != nil {
				return err
			}
			if p.name == "" {
				p.name = "Living room demo"
			}
			return runPlace(cmd, o, p, scenario)
		},
	}
	p.AddFlags(cmd.Flags())
	return cmd
}

func loadTemplateScenario(path, ref string) (assets.Scenario, error) {
	store, err := project.LoadTemplates(path)
	if err != nil {
		return assets.Scenario{}, fmt.Errorf("loading templates: %w", err)
	}
	t := store.FindByID(ref)
	if t == nil {
		t = store.FindByName(ref)
	}
	if t == nil {
		return assets.Scenario{}, fmt.Errorf("template %q not found", ref)
	}
	return assets.Scenario{RoomSpec: t.Room, Order: t.Order}, nil
}

// resolveOrder picks the fittings to place: explicit ids win over an order
// file, which wins over the room file.
func (p *placeOptions) resolveOrder(cmd *cobra.Command, o *rootOptions, c *model.Catalog, fallback []string) ([]string, error) {
	if len(p.order) > 0 {
		return p.order, nil
	}
	if p.orderFile == "" {
		return fallback, nil
	}

	res := importer.CheckModels(importer.Import(p.orderFile), c)
	for _, w := range res.Warnings {
		o.log.Info("order file warning", "file", p.orderFile, "warning", w)
	}
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			fmt.Fprintln(cmd.ErrOrStderr(), e)
		}
		return nil, fmt.Errorf("%d problem(s) in order file %s", len(res.Errors), p.orderFile)
	}
	return res.Order(), nil
}

func runPlace(cmd *cobra.Command, o *rootOptions, p *placeOptions, scenario assets.Scenario) error {
	f, err := o.furnisher(cmd)
	if err != nil {
		return err
	}
	order, err := p.resolveOrder(cmd, o, f.Catalog(), scenario.Order)
	if err != nil {
		return err
	}
	r, err := room.FromSpec(scenario.RoomSpec, f.Settings())
	if err != nil {
		return err
	}

	var res engine.Result
	if p.seeds > 1 {
		results, err := engine.CompareSeeds(f, r, order, engine.DefaultSeeds(p.seed, p.seeds))
		if err != nil {
			return err
		}
		best, _ := engine.BestSeed(results)
		o.log.V(1).Info("compared seeds", "tried", len(results), "best", best.Seed, "placed", best.Placed)
		res = best.Result
	} else {
		res, err = f.Generate(r, order, p.seed)
		if err != nil {
			return err
		}
	}

	name := p.name
	if name == "" {
		name = scenario.Name
	}
	layout := model.NewLayout(name, scenario.RoomSpec, order, res.Seed, res.Placements)
	layout.Diagnostics = res.DiagnosticStrings()

	printLayout(cmd.OutOrStdout(), layout, res.Stats, model.CalculateCoverage(layout.Room, layout.Placements, f.Catalog()))
	if len(order) > 0 && !res.Complete() {
		return fmt.Errorf("no layout found for %d fitting(s) with seed %d", len(order), res.Seed)
	}

	if err := writeOutputs(layout, f.Catalog(), p.outputs); err != nil {
		return err
	}
	if p.tags != "" {
		if err := export.ExportTags(p.tags, layout); err != nil {
			return fmt.Errorf("writing tags: %w", err)
		}
	}
	if p.save {
		path := filepath.Join(o.layoutsDir(), project.LayoutFileName(layout))
		if err := project.SaveLayout(path, layout); err != nil {
			return fmt.Errorf("saving layout: %w", err)
		}
		o.config.AddRecentLayout(path, 10)
		if err := project.SaveAppConfig(o.configPath, o.config); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved", path)
	}
	return nil
}

// writeOutputs writes the layout once per path, in the format named by the
// path's extension.
func writeOutputs(layout model.Layout, c *model.Catalog, paths []string) error {
	for _, path := range paths {
		var err error
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			err = project.SaveLayout(path, layout)
		case ".pdf":
			err = export.ExportPDF(path, layout, c)
		case ".xlsx":
			err = export.ExportExcel(path, layout, c)
		case ".dxf":
			err = export.ExportDXF(path, layout, c)
		default:
			return fmt.Errorf("unsupported output format: %s", path)
		}
		if err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

func printLayout(w io.Writer, layout model.Layout, stats engine.SearchStats, cov model.FloorCoverage) {
	fmt.Fprintf(w, "%s (%gx%g m, seed %d)\n", layout.Name, layout.Room.Width, layout.Room.Depth, layout.Seed)
	for i, pl := range layout.Placements {
		fmt.Fprintf(w, "%3d  %-28s x=%6.2f  y=%6.2f  rot=%3d\n",
			i+1, pl.Representation.FittingModelID, pl.X, pl.Y, pl.QuarterTurns()*90)
	}
	fmt.Fprintf(w, "placed %d of %d fittings (%d units, %d candidates, %d backtracks)\n",
		len(layout.Placements), len(layout.Order), stats.Units, stats.Candidates, stats.Backtracks)
	if cov.Fittings > 0 {
		fmt.Fprintf(w, "floor used %.1f%% (%.2f of %.2f m² free)\n", cov.CoveragePercent, cov.FreeArea, cov.RoomArea)
	}
	for _, d := range layout.Diagnostics {
		fmt.Fprintln(w, "  !", d)
	}
}
