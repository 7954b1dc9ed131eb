package cmd

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agentic-research/locus/internal/web"
)

var listenAddr string

func init() {
	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "Address to listen on (overrides server.listen)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the map widget over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		addr := cfg.Server.Listen
		if cmd.Flags().Changed("listen") {
			addr = listenAddr
		}

		w, err := openWidget(ctx, cmd)
		if err != nil {
			return err
		}
		srv, err := web.NewServer(w)
		if err != nil {
			return err
		}

		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		fmt.Printf("Serving locus on http://%s (data: %s)\n", ln.Addr(), cfg.Data.Source)
		return srv.Serve(ctx, ln)
	},
}
