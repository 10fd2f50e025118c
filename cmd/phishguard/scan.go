package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/user/phishguard/internal/model"
	"github.com/user/phishguard/internal/tui"
	"github.com/user/phishguard/internal/util"
	"github.com/user/phishguard/internal/view"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Submit a target for classification",
}

var scanURLCmd = &cobra.Command{
	Use:   "url <url>",
	Short: "Submit a URL for phishing classification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api := newAPIClient()

		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		defer cancel()

		util.Info("Submitting URL for classification: %s", args[0])
		out, err := api.SubmitURL(ctx, args[0])
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		printOutcome(args[0], out)
		return nil
	},
}

var scanFileCmd = &cobra.Command{
	Use:   "file <path>",
	Short: "Submit a file for malware classification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		api := newAPIClient()

		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		defer cancel()

		name := filepath.Base(args[0])
		util.Info("Submitting file for classification: %s (%s)", name, view.FormatSize(int64(len(data))))
		out, err := api.SubmitFile(ctx, data, name)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		printOutcome(name, out)
		return nil
	},
}

func init() {
	scanCmd.AddCommand(scanURLCmd)
	scanCmd.AddCommand(scanFileCmd)
}

func printOutcome(target string, out *model.ScanOutcome) {
	verdict := tui.VerdictStyle(out.Verdict).Render(string(out.Verdict))

	fmt.Println()
	fmt.Printf("  Target:      %s\n", target)
	fmt.Printf("  Verdict:     %s\n", verdict)
	fmt.Printf("  Risk:        %s\n", view.RiskLabel(out))
	fmt.Printf("  Confidence:  %s\n", view.ConfidenceLabel(out.Verdict, out.RiskScore))
	if out.Filename != "" {
		fmt.Printf("  File:        %s (%s)\n", out.Filename, view.FormatSize(out.Size))
	}
	if out.Hash != "" {
		fmt.Printf("  SHA-256:     %s\n", out.Hash)
	}
	if out.Details != "" {
		fmt.Printf("  Details:     %s\n", out.Details)
	}
	if len(out.Features) > 0 {
		fmt.Println("  Features:")
		keys := make([]string, 0, len(out.Features))
		for k := range out.Features {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("    %-24s %v\n", k, out.Features[k])
		}
	}
	fmt.Println()
}
