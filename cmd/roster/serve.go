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

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-roster/pkg/backend"
	"github.com/goliatone/go-roster/pkg/frontend"
	"github.com/goliatone/go-roster/pkg/gateway"
)

var serveOnly []string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the backend, the gateway and the front-end",
	Long: `Starts the three HTTP services on the addresses from the config:

  backend   MS Plantilla JSON API (default :8002)
  gateway   prefix proxy, /Rugby -> backend (default :8001)
  frontend  HTML pages rendered through the gateway (default :8000)

Use --only to start a subset.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringSliceVar(&serveOnly, "only", nil, "services to start (backend, gateway, frontend)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	servers := map[string]*http.Server{}
	if wanted("backend") {
		h, err := backendHandler()
		if err != nil {
			return err
		}
		servers["backend"] = newServer(cfg.Backend.Addr, gateway.AccessLog(logger.Named("backend"), h))
	}
	if wanted("gateway") {
		g, err := gateway.New(
			gateway.WithRoutes(cfg.Gateway.Routes),
			gateway.WithAllowedOrigins(cfg.Gateway.AllowedOrigins...),
			gateway.WithLogger(logger),
		)
		if err != nil {
			return err
		}
		servers["gateway"] = newServer(cfg.Gateway.Addr, g.Handler())
	}
	if wanted("frontend") {
		controller, err := newController(ctx, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		servers["frontend"] = newServer(cfg.Frontend.Addr,
			gateway.RequestID(gateway.AccessLog(logger.Named("frontend"), frontend.NewHandler(controller))))
	}
	if len(servers) == 0 {
		return fmt.Errorf("serve: no services selected from %v", serveOnly)
	}

	g, gctx := errgroup.WithContext(ctx)
	for name, srv := range servers {
		g.Go(func() error {
			logger.Info("listening", zap.String("service", name), zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve %s: %w", name, err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}
	return g.Wait()
}

func backendHandler() (http.Handler, error) {
	opts := []backend.OptionFn{backend.WithLogger(logger)}
	if cfg.Backend.SeedFile != "" {
		f, err := os.Open(cfg.Backend.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("serve: open seed: %w", err)
		}
		defer func() { _ = f.Close() }()
		records, err := backend.LoadRecords(f)
		if err != nil {
			return nil, err
		}
		opts = append(opts, backend.WithRecords(records))
	}
	return backend.New(opts...).Handler(), nil
}

func newServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func wanted(service string) bool {
	if len(serveOnly) == 0 {
		return true
	}
	for _, s := range serveOnly {
		if s == service {
			return true
		}
	}
	return false
}
