package main

import (
	"github.com/spf13/cobra"

	"github.com/user/phishguard/internal/tui"
)

var popupCmd = &cobra.Command{
	Use:   "popup",
	Short: "Open the terminal popup",
	Long: `Open the interactive terminal popup.

The popup mirrors the browser-extension view: it pings the log service
on every refresh cycle, polls the threat log and extension status, and
renders the latest snapshot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.NewApp(cfg).Run()
	},
}
