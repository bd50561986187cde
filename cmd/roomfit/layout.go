package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RoomFit/internal/check"
	"github.com/piwi3910/RoomFit/internal/export"
	"github.com/piwi3910/RoomFit/internal/project"
	"github.com/piwi3910/RoomFit/internal/room"
)

func newCheckCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check LAYOUT_FILE",
		Short: "Audit a saved layout for overlaps and blocked openings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := project.LoadLayout(args[0])
			if err != nil {
				return err
			}
			c, err := o.loadCatalog()
			if err != nil {
				return err
			}
			r, err := room.FromSpec(layout.Room, o.settings(cmd))
			if err != nil {
				return err
			}

			problems := check.CheckLayout(c, r, layout.Placements)
			out := cmd.OutOrStdout()
			if len(problems) == 0 {
				fmt.Fprintf(out, "%s: %d fitting(s), no problems\n", args[0], len(layout.Placements))
				return nil
			}
			for _, msg := range check.FormatProblems(problems) {
				fmt.Fprintln(out, msg)
			}
			return fmt.Errorf("%d problem(s) found", len(problems))
		},
	}
}

func newExportCommand(o *rootOptions) *cobra.Command {
	var (
		outputs []string
		tags    string
	)
	cmd := &cobra.Command{
		Use:   "export LAYOUT_FILE",
		Short: "Write a saved layout as PDF, Excel or DXF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(outputs) == 0 && tags == "" {
				return fmt.Errorf("nothing to export, use --output or --tags")
			}
			layout, err := project.LoadLayout(args[0])
			if err != nil {
				return err
			}
			c, err := o.loadCatalog()
			if err != nil {
				return err
			}
			if err := writeOutputs(layout, c, outputs); err != nil {
				return err
			}
			if tags != "" {
				if err := export.ExportTags(tags, layout); err != nil {
					return fmt.Errorf("writing tags: %w", err)
				}
			}
			o.log.V(1).Info("exported layout", "layout", layout.ID, "files", len(outputs))
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&outputs, "output", "o", nil, "Output files; the extension picks the format (.json, .pdf, .xlsx, .dxf)")
	cmd.Flags().StringVar(&tags, "tags", "", "Write QR-coded fitting tags to this PDF")
	return cmd
}

func newLayoutsCommand(o *rootOptions) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "List saved layouts, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = o.layoutsDir()
			}
			paths, err := project.ListLayouts(dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range o.config.RecentLayouts {
				fmt.Fprintln(out, "*", p)
			}
			recent := make(map[string]bool, len(o.config.RecentLayouts))
			for _, p := range o.config.RecentLayouts {
				recent[p] = true
			}
			for _, p := range paths {
				if !recent[p] {
					fmt.Fprintln(out, " ", p)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Layouts directory")
	return cmd
}
