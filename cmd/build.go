package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentic-research/locus/internal/ingest"
)

var buildCmd = &cobra.Command{
	Use:   "build [source] [output.db]",
	Short: "Build a locus SQLite database from a JSON source",
	Long: `Build a locus SQLite database from a JSON source.

The source is a file path or an http(s) URL; --selector applies as for the
other commands. The output can be used as --data for every command.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := args[0]
		output := args[1]

		l, err := ingest.NewLoader(source, cfg.Data.Selector)
		if err != nil {
			return err
		}

		start := time.Now()
		fmt.Fprintf(cmd.OutOrStdout(), "Building %s from %s...\n", output, source)
		nodes, err := l.Load(cmd.Context())
		if err != nil {
			return err
		}

		_ = os.Remove(output) // Overwrite
		writer, err := ingest.NewSQLiteWriter(output)
		if err != nil {
			return err
		}
		if err := writer.AddAll(nodes); err != nil {
			_ = writer.Close()
			return err
		}
		if err := writer.Close(); err != nil {
			return fmt.Errorf("commit %s: %w", output, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d top-level locations in %v.\n", len(nodes), time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
