package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentic-research/locus/internal/mcptools"
)

func init() {
	rootCmd.AddCommand(mcpCmd)
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the widget as MCP tools over stdio",
	Long: `Serve the widget as MCP tools over stdio.

Stdout carries the protocol; logs and warnings go to stderr or the log file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWidget(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		return mcptools.New(w, version).ServeStdio()
	},
}
