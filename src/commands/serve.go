package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BielosX/wombat/poke-search/src/server"
	"github.com/spf13/cobra"
)

func (a *app) serveCmd() *cobra.Command {
	var listenAddr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve Pokemon lookups over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			httpServer := &http.Server{
				Addr:              listenAddr,
				Handler:           server.New(a.client, a.sugar),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errChan := make(chan error, 1)
			go func() {
				a.sugar.Infof("Listening on %s", listenAddr)
				errChan <- httpServer.ListenAndServe()
			}()
			select {
			case err := <-errChan:
				return err
			case <-ctx.Done():
			}
			a.sugar.Infof("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return err
			}
			if err := <-errChan; !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&listenAddr, "listen", a.cfg.ListenAddr, "listen address")
	return cmd
}
