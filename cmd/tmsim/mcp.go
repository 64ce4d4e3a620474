package main

import (
	"github.com/spf13/cobra"

	mcpAdapter "github.com/aretw0/tmsim/pkg/adapters/mcp"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server on stdio",
		Long:  `Exposes the convert_machine and validate_machine tools over the Model Context Protocol. Logs go to stderr.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.logger.Info("starting MCP server", "transport", "stdio")
			return mcpAdapter.NewServer(a.converter()).ServeStdio()
		},
	}
}
