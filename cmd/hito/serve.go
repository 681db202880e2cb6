package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/iomz/hito/hito/server"
	"github.com/spf13/cobra"
)

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API used by the browser UI",
		Long: `Serve the JSON API used by the browser UI. The server stops gracefully on
SIGINT or SIGTERM, waiting up to server.shutdown_timeout for requests in flight.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			timeout, err := c.settings.ShutdownTimeout()
			if err != nil {
				return NewConfigError("start server", err, CommonSuggestions.CheckConfig)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			addr := c.settings.Server.Addr
			cmd.Printf("hito listening on http://%s\n", addr)

			srv := server.New(c.app, server.WithLogger(c.logger))
			if err := srv.Run(ctx, addr, timeout); err != nil {
				return WrapError("run server", err)
			}
			return nil
		},
	}

	cmd.Flags().String("addr", "", "listen address (default from server.addr)")
	_ = c.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}
