package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/codalotl/retransdiff/internal/server"
)

func (a *app) serveCommand() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API over HTTP",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			addr := listen
			if addr == "" {
				addr = a.cfg.Listen
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(a.err, "listening on http://%s\n", addr)
			return server.New(a.store, a.cfg, a.logger).ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "host:port to listen on (default: listen setting)")
	return cmd
}
