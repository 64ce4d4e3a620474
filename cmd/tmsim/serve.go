package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aretw0/tmsim"
	httpAdapter "github.com/aretw0/tmsim/pkg/adapters/http"
	"github.com/aretw0/tmsim/pkg/adapters/memory"
	"github.com/aretw0/tmsim/pkg/adapters/redis"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/aretw0/tmsim/pkg/observability"
	"github.com/aretw0/tmsim/pkg/ports"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var (
		port      string
		redisAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP conversion server",
		Long:  `Exposes POST /convert, POST /validate, GET /healthz and GET /metrics. Documents are cached in memory, or in Redis with --redis.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = a.cfg.Server.Port
			}
			if !cmd.Flags().Changed("redis") {
				redisAddr = a.cfg.Cache.RedisAddr
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			metrics := observability.NewMetrics(reg)

			var cache ports.DocumentCache = memory.NewCache()
			if redisAddr != "" {
				rc := redis.New(redisAddr, a.cfg.Cache.RedisPassword, a.cfg.Cache.RedisDB,
					redis.WithTTL(a.cfg.Cache.TTL),
					redis.WithPrefix(a.cfg.Cache.Prefix),
				)
				defer rc.Close()
				if err := rc.Ping(cmd.Context()); err != nil {
					return fmt.Errorf("redis unavailable at %s: %w", redisAddr, err)
				}
				cache = rc
			}

			hooks := observability.Chain(metrics.Hooks(), domain.LifecycleHooks{
				OnConvert: func(ctx context.Context, e *domain.ConversionEvent) {
					if e.Err != nil {
						a.logger.Info("conversion rejected", "format", e.Format, "kind", domain.ErrorKind(e.Err))
					}
				},
			})
			conv := a.converter(
				tmsim.WithCache(cache),
				tmsim.WithLifecycleHooks(hooks),
			)
			handler := httpAdapter.NewHandler(conv,
				httpAdapter.WithLogger(a.logger),
				httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
			)

			srv := &http.Server{
				Addr:              ":" + port,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}
			return serve(cmd.Context(), cmd, srv, redisAddr)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to listen on")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for the document cache (default: in-memory)")
	return cmd
}

func serve(ctx context.Context, cmd *cobra.Command, srv *http.Server, redisAddr string) error {
	out := cmd.OutOrStdout()

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		fmt.Fprintf(out, "Starting tmsim server on %s\n", srv.Addr)
		if redisAddr != "" {
			fmt.Fprintf(out, "Caching documents in Redis at %s\n", redisAddr)
		}
		serverErrors <- srv.ListenAndServe()
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		fmt.Fprintln(out, "\nShutdown signal received, shutting down server...")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			if closeErr := srv.Close(); closeErr != nil {
				return fmt.Errorf("could not stop server: %w", errors.Join(err, closeErr))
			}
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
		}
		fmt.Fprintln(out, "tmsim server stopped gracefully")
		return nil
	}
}
