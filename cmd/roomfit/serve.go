package main

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/RoomFit/internal/server"
)

func newServeCommand(o *rootOptions) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := o.furnisher(cmd)
			if err != nil {
				return err
			}
			addr := o.config.ListenAddress
			if cmd.Flags().Changed("listen") || addr == "" {
				addr = listen
			}
			return server.New(f, o.log.WithName("server")).Run(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVarP(&listen, "listen", "l", ":8080", "Address to listen on")
	return cmd
}
