package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/phishguard/internal/backend"
	"github.com/user/phishguard/internal/storage"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the reference log service",
	Long: `Run the reference log service.

The service owns the SQLite threat log and the extension heartbeat
registry, and forwards scan submissions to the configured inference
service. Both the popup and the web dashboard poll it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := storage.Initialize(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer db.Close()

		port := servePort
		if port == 0 {
			port = cfg.ServePort
		}
		return backend.NewServer(db, cfg, port).Start()
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (default from config)")
}
