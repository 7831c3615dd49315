// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/fairscanproj/fairscan/internal/tool"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the evaluation as an MCP tool over stdio",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "fairscan",
		Version: "0.1.0",
	}, nil)
	mcp.AddTool(server, tool.MetadataEvaluateFairIndicators, tool.EvaluateFairIndicators)

	logger.Info("serving evaluate_fair_indicators over stdio")
	return server.Run(cmd.Context(), &mcp.StdioTransport{})
}
