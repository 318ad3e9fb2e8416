package main

import (
	"github.com/spf13/cobra"

	"github.com/brainboyai/tiny-tutor-api/internal/config"
	"github.com/brainboyai/tiny-tutor-api/internal/container"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the game job runner without the HTTP API",
	Long: `Consume game generation jobs from the configured queue.

Only useful with QUEUE_DRIVER=redis; the memory queue is private to the
process that created it, so jobs submitted elsewhere are only picked up
by the periodic sweep of unclaimed rows.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		c, err := container.New(ctx, settings)
		if err != nil {
			return err
		}
		defer c.Close()

		config.WithContext(ctx).
			WithField("concurrency", settings.WorkerConcurrency).
			Info("Game job runner started")
		return c.Runner().Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
