package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/EfeDurmaz16/assos/src/api"
	"github.com/EfeDurmaz16/assos/src/logging"
	"github.com/EfeDurmaz16/assos/src/messaging"
)

func newServeCmd() *cobra.Command {
	var skipBootstrap bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the NATS processor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), skipBootstrap)
		},
	}
	cmd.Flags().BoolVar(&skipBootstrap, "skip-bootstrap", false, "Do not ensure index collections on startup")
	return cmd
}

func serve(parent context.Context, skipBootstrap bool) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := buildRuntime(ctx, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	defer rt.Close()

	if !skipBootstrap {
		if err := rt.Bootstrap(ctx); err != nil {
			rt.logger.Printf("bootstrap incomplete: %v", err)
		}
	}

	var history api.HistoryReader
	if rt.history != nil {
		history = rt.history
	}
	router := api.New(ctx, rt.manager, api.Options{
		CORSOrigins:        rt.cfg.CORSOrigins,
		JWTSecret:          rt.cfg.JWTSecret,
		RateLimitPerMinute: rt.cfg.RateLimitPerMinute,
		History:            history,
		Gatherer:           prometheus.DefaultGatherer,
		Logger:             logging.New("api"),
		Debug:              rt.cfg.Debug,
	})
	httpSrv := &http.Server{
		Addr:              ":" + rt.cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rt.logger.Printf("AI service listening on %s", rt.cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutCtx)
	})

	if rt.cfg.NATSURL != "" {
		nc, err := messaging.Connect(rt.cfg.NATSURL, logging.New("messaging"))
		if err != nil {
			rt.logger.Printf("message processor disabled: %v", err)
		} else {
			defer nc.Close()
			processor := messaging.NewProcessor(nc, rt.manager, rt.cfg.NATSWorkers, logging.New("messaging"))
			g.Go(func() error {
				err := processor.Run(gctx)
				_ = nc.Drain()
				return err
			})
		}
	} else {
		rt.logger.Printf("NATS_URL not set; message processor disabled")
	}

	err = g.Wait()
	rt.logger.Printf("AI service stopped")
	return err
}
