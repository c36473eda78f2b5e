package main

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newBootstrapCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Migrate the database, check the cache and create index collections",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			rt, err := buildRuntime(ctx, prometheus.NewRegistry())
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.Bootstrap(ctx); err != nil {
				return err
			}
			rt.logger.Printf("bootstrap complete")
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "Overall bootstrap deadline")
	return cmd
}
