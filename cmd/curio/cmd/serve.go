package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/curio-chat/curio/server"
	"github.com/spf13/cobra"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the chat relay webhook server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			runtime, err := newRuntime(cmd, flags, server.NewHTTPMessenger(envOutboundURL()))
			if err != nil {
				return err
			}
			defer runtime.Close()

			srv := server.NewServer(runtime.Logger(), runtime.RuntimeConfig().BindAddr, runtime.Orchestrator())

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func envOutboundURL() string {
	if v := os.Getenv("CURIO_OUTBOUND_URL"); v != "" {
		return v
	}
	return "http://localhost:8086/route_agent_message"
}
