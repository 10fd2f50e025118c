package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/phishguard/internal/heartbeat"
	"github.com/user/phishguard/internal/history"
	"github.com/user/phishguard/internal/model"
	"github.com/user/phishguard/internal/tui"
	"github.com/user/phishguard/internal/view"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show extension status and scan counts",
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

		s := view.Project(store.List(model.LogFilter{}), hb, model.LogFilter{})

		banner := tui.OfflineStyle.Render(s.Banner)
		if s.ExtensionOnline {
			banner = tui.OnlineStyle.Render(s.Banner)
		}

		fmt.Println()
		fmt.Printf("  Extension:   %s\n", banner)
		fmt.Printf("  Last ping:   %s\n", s.LastPing)
		fmt.Printf("  Scans:       %d total (%d URL / %d file / %d ext)\n",
			s.Total, s.URLScans, s.FileScans, s.ExtensionScans)
		fmt.Printf("  Threats:     %d\n", s.Threats)
		fmt.Println()
		return nil
	},
}
