package main

import (
	"github.com/spf13/cobra"

	"github.com/user/phishguard/internal/web"
)

var webPort int

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the web dashboard",
	Long: `Start the web dashboard.

The dashboard polls the threat log and extension status on independent
timers and serves a browsable view with search, filtering and delete.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port := webPort
		if port == 0 {
			port = cfg.WebPort
		}
		return web.NewServer(cfg, port).Start()
	},
}

func init() {
	webCmd.Flags().IntVarP(&webPort, "port", "p", 0, "port to listen on (default from config)")
}
