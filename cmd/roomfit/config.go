package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RoomFit/internal/project"
)

func newConfigCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, back up and restore settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(o.config, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print where settings are stored",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "config:   ", o.configPath)
			fmt.Fprintln(out, "templates:", o.templatePath())
			fmt.Fprintln(out, "layouts:  ", o.layoutsDir())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := project.SaveAppConfig(o.configPath, o.config); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", o.configPath)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "backup FILE",
		Short: "Export settings and templates to one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := project.LoadTemplates(o.templatePath())
			if err != nil {
				return err
			}
			return project.ExportAllData(args[0], o.config, templates)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "restore FILE",
		Short: "Replace settings and templates from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.SaveAppConfig(o.configPath, backup.Config); err != nil {
				return err
			}
			if err := project.SaveTemplates(o.templatePath(), backup.Templates); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d template(s) from backup %s\n", len(backup.Templates.Templates), backup.Version)
			return nil
		},
	})
	return cmd
}
