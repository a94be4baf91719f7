package main

import (
	"fmt"

	"github.com/jonathan/startup-radar/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server that exposes the startup search, filter options, stats and filter-state endpoints.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Port = port
			}

			ctx := cmd.Context()
			loader, closeFn, err := a.newLoader(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			srv, err := server.New(ctx, server.Config{
				Port:   a.cfg.Port,
				Loader: loader,
				Logger: a.logger,
			})
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			return srv.Run(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on")
	return cmd
}
