package commands

import (
	"context"
	"errors"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"money-calculator/http"

	nhttp "net/http"
)

// shutdownTimeout how long in-flight requests get once the server is asked to stop
const shutdownTimeout = 5 * time.Second

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and /metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = appCtx.cfg.ListenAddr
			}
			logger := log.With(appCtx.logger, "component", "http")

			mux := nhttp.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(appCtx.registry, promhttp.HandlerOpts{}))
			mux.Handle("/", http.NewServer(appCtx.catalog, appCtx.exchange, logger, appCtx.catalog.Refresh, appCtx.rates.Clear))

			server := &nhttp.Server{
				Addr:              addr,
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
			}
			return serve(cmd.Context(), server, logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default LISTEN_ADDR or :8080)")
	return cmd
}

// serve runs server until ctx is done, then shuts it down gracefully
func serve(ctx context.Context, server *nhttp.Server, logger log.Logger) error {
	errc := make(chan error, 1)
	go func() {
		level.Info(logger).Log("msg", "listening", "addr", server.Addr)
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		level.Info(logger).Log("msg", "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, nhttp.ErrServerClosed) {
			return err
		}
		return nil
	}
}
