package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/phishguard/internal/history"
	"github.com/user/phishguard/internal/model"
	"github.com/user/phishguard/internal/util"
)

var (
	logsSearch string
	logsType   string
	logsJSON   bool
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "List the threat log",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := history.NewStore(newAPIClient())

		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		defer cancel()

		if err := store.Refresh(ctx); err != nil {
			return fmt.Errorf("failed to fetch logs: %w", err)
		}

		filter := model.LogFilter{
			Query: logsSearch,
			Type:  model.TypeFilter(logsType),
		}
		records := store.List(filter)

		if logsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		}

		if len(records) == 0 {
			fmt.Println("No scans recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SCAN ID\tTIME\tTYPE\tTARGET\tPREDICTION\tCONFIDENCE")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				r.ID,
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				r.Type,
				truncate(r.Target, 48),
				r.Result,
				r.Confidence)
		}
		return w.Flush()
	},
}

var logsDeleteCmd = &cobra.Command{
	Use:   "delete <scan-id>",
	Short: "Delete a log record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api := newAPIClient()

		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		defer cancel()

		if err := api.DeleteLog(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to delete log: %w", err)
		}

		util.Info("Deleted log record %s", args[0])
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	logsCmd.Flags().StringVar(&logsSearch, "search", "", "filter by id, target or prediction")
	logsCmd.Flags().StringVar(&logsType, "type", "all", "filter by scan type (all, url, file)")
	logsCmd.Flags().BoolVar(&logsJSON, "json", false, "output as JSON")

	logsCmd.AddCommand(logsDeleteCmd)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
