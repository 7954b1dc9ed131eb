package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentic-research/locus/internal/tui"
)

func init() {
	rootCmd.AddCommand(tuiCmd)
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the widget in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWidget(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		return tui.Run(w)
	},
}
