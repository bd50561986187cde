package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RoomFit/internal/model"
	"github.com/piwi3910/RoomFit/internal/project"
)

func newTemplateCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"templates"},
		Short:   "Manage reusable room templates",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := project.LoadTemplates(o.templatePath())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tROOM (m)\tFITTINGS")
			for _, t := range store.Templates {
				fmt.Fprintf(tw, "%s\t%s\t%g x %g\t%d\n", t.ID, t.Name, t.Room.Width, t.Room.Depth, len(t.Order))
			}
			return tw.Flush()
		},
	})

	var description string
	add := &cobra.Command{
		Use:   "add NAME ROOM_FILE",
		Short: "Save a room file as a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := project.LoadRoomFile(args[1])
			if err != nil {
				return err
			}
			path := o.templatePath()
			store, err := project.LoadTemplates(path)
			if err != nil {
				return err
			}
			if store.FindByName(args[0]) != nil {
				return fmt.Errorf("template %q already exists", args[0])
			}
			t := model.NewRoomTemplate(args[0], description, s.RoomSpec, s.Order)
			store.Add(t)
			if err := project.SaveTemplates(path, store); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added template %s (%s)\n", t.Name, t.ID)
			return nil
		},
	}
	add.Flags().StringVarP(&description, "description", "d", "", "Template description")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove NAME_OR_ID",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := o.templatePath()
			store, err := project.LoadTemplates(path)
			if err != nil {
				return err
			}
			id := args[0]
			if t := store.FindByName(id); t != nil {
				id = t.ID
			}
			if !store.Remove(id) {
				return fmt.Errorf("template %q not found", args[0])
			}
			return project.SaveTemplates(path, store)
		},
	})
	return cmd
}
