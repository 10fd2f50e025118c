package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/phishguard/internal/heartbeat"
	"github.com/user/phishguard/internal/history"
	"github.com/user/phishguard/internal/model"
	"github.com/user/phishguard/internal/report"
	"github.com/user/phishguard/internal/view"
)

var reportOutput string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a markdown threat report",
	RunE: func(cmd *cobra.Command, args []string) error {
		api := newAPIClient()
		store := history.NewStore(api)
		monitor := heartbeat.NewMonitor(api)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		defer cancel()

		if err := store.Refresh(ctx); err != nil {
			return fmt.Errorf("failed to fetch logs: %w", err)
		}
		hb := monitor.Poll(ctx)

		summary := view.Project(store.List(model.LogFilter{}), hb, model.LogFilter{})

		path, err := report.NewGenerator(cfg).Write(summary, reportOutput)
		if err != nil {
			return err
		}

		fmt.Printf("Report written to %s\n", path)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "output file path (default under report dir)")
}
