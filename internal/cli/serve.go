package cli

import (
	"github.com/spf13/cobra"

	"bptree/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Listen for TCP clients on the configured address",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := server.New(cfg, log, db, userStore)
		return srv.Listen()
	},
}
