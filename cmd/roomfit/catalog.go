package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RoomFit/internal/assets"
	"github.com/piwi3910/RoomFit/internal/catalog"
	"github.com/piwi3910/RoomFit/internal/model"
)

func newCatalogCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and convert fitting catalogs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the fitting models of the active catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.loadCatalog()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "MODEL\tTYPE\tW x D x H (m)")
			for _, s := range c.Summaries() {
				b := s.BoundingBox
				fmt.Fprintf(tw, "%s\t%s\t%.2f x %.2f x %.2f\n", s.ID, s.FittingTypeID, b.Width, b.Depth, b.Height)
			}
			return tw.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "convert IN OUT",
		Short: "Convert a catalog between XML, JSON and YAML",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load(args[0], o.log)
			if err != nil {
				return err
			}
			return saveCatalog(cmd, args[1], c)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "dump OUT",
		Short: "Write the built-in catalog to a file for editing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := catalog.FormatFromPath(args[0])
			if err != nil {
				return err
			}
			if format == catalog.FormatXML {
				return os.WriteFile(args[0], assets.FittingDatabaseXML(), 0644)
			}
			c, err := assets.DefaultCatalog()
			if err != nil {
				return err
			}
			return saveCatalog(cmd, args[0], c)
		},
	})
	return cmd
}

func saveCatalog(cmd *cobra.Command, path string, c *model.Catalog) error {
	if err := catalog.Save(path, c); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d model(s) to %s\n", len(c.ModelIDs()), path)
	return nil
}
