package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/eim-dev/eim-client/pkg/client"
	"github.com/eim-dev/eim-client/pkg/protocol"
)

func watchCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow backend pushes and serve the live state",
		Long: `Connect to the backend, log every packet it pushes, and serve the
mirrored session over HTTP:

  /healthz      200 while the backend connection is up
  /state        tracks, mixer strips and scan state as JSON
  /tracks/{id}  one track and its mixer strip
  /metrics      Prometheus metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = a.cfg.StatusAddr
			}
			return runWatch(cmd.Context(), a, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Status server listen address (default from config)")

	return cmd
}

func runWatch(ctx context.Context, a *app, addr string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := client.NewMetrics(
		client.WithRegistry(reg),
		client.WithNamespace(a.cfg.MetricsNamespace),
	)

	c, err := a.connect(ctx, metrics)
	if err != nil {
		return err
	}
	defer c.Close()

	for op := protocol.ClientboundReply; op <= protocol.ClientboundTrackRemoved; op++ {
		op := op
		c.Watch(op, func() {
			a.logger.Info("packet", "opcode", op.String(), "tracks", len(c.Store().Tracks()))
		})
	}

	if err := c.Refresh(ctx); err != nil {
		return err
	}
	if err := c.GetTracksMixerInfo(ctx); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           newStatusRouter(c, reg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("status server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		err := c.Wait(gctx)
		if ctx.Err() != nil {
			// Interrupted by the user.
			return nil
		}
		if err == nil {
			err = client.ErrChannelClosed
		}
		return err
	})

	return g.Wait()
}
