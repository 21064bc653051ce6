package cli

import (
	"github.com/avatarneil/stack-status/internal/application"
	"github.com/avatarneil/stack-status/internal/infrastructure/config"
	"github.com/avatarneil/stack-status/internal/infrastructure/logging"
	"github.com/avatarneil/stack-status/internal/infrastructure/mcp_stdio"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as an MCP server on stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		// stdout carries the protocol; zap stays on stderr.
		log := logging.New(cfg.Log.Level)
		defer func() { _ = log.Sync() }()

		gt, gh := newClients(cfg)
		prs, checks := prProviders(cmd, gh, false)
		composer := application.NewComposer(log, gt, prs, checks, "")

		return mcp_stdio.New(composer, gt, gh, version).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
