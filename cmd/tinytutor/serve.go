package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/brainboyai/tiny-tutor-api/internal/config"
	"github.com/brainboyai/tiny-tutor-api/internal/container"
	"github.com/brainboyai/tiny-tutor-api/internal/migrations"
)

var (
	serveHost     string
	serveNoWorker bool
	serveMigrate  bool
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API server.

Unless --no-worker is given the game job runner runs in the same process.
Run "tinytutor worker" separately when the queue driver is redis and
workers should scale on their own.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := config.WithContext(ctx)

		c, err := container.New(ctx, settings)
		if err != nil {
			return err
		}
		defer c.Close()

		if serveMigrate {
			if err := migrations.Run(c.DB.WithContext(ctx)); err != nil {
				return err
			}
		}

		srv := &http.Server{
			Addr:              net.JoinHostPort(serveHost, settings.Port),
			Handler:           c.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			log.WithField("addr", srv.Addr).Info("HTTP server listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			log.Info("Shutting down HTTP server")
			return srv.Shutdown(shutdownCtx)
		})
		if !serveNoWorker {
			g.Go(func() error { return c.Runner().Run(ctx) })
		}
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default: all interfaces)")
	serveCmd.Flags().BoolVar(&serveNoWorker, "no-worker", false, "Do not run the game job runner in this process")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply database migrations before serving")

	rootCmd.AddCommand(serveCmd)
}
