package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridpath/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve sessions over HTTP with a websocket event stream",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if addr == "" {
				addr = a.cfg.HTTPAddr
			}
			store, release, err := a.layoutStore(ctx)
			if err != nil {
				return err
			}
			defer release()

			hub := server.NewHub(a.log, a.sessionOptions()...)
			defer hub.Close()

			router := server.NewRouter(server.Config{
				Addr:    addr,
				BaseURL: "/api",
				GinMode: a.cfg.GinMode,
				Logger:  a.log,
				Controllers: []server.Controller{
					server.NewSessionController(hub),
					server.NewLayoutController(hub, store),
					server.NewEventController(hub, a.log, nil),
				},
			})
			return router.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default GRIDPATH_HTTP_ADDR)")
	return cmd
}
