package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spacesedan/tubemood/config"
	"github.com/spacesedan/tubemood/internal/dashboard"
	"github.com/spf13/cobra"
)

func newServeCmd(settings func() *config.Settings) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settings()
			if addr != "" {
				s.HTTPAddr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, s)
			if err != nil {
				return err
			}
			defer a.Close()

			var recent dashboard.RecentSource
			if a.history != nil {
				recent = a.history
			}

			srv := dashboard.NewServer(a.analyzer, s.DefaultVideoID, recent)
			return srv.ListenAndServe(ctx, s.HTTPAddr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	return cmd
}
