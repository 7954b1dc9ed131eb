package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentic-research/locus/api"
	"github.com/agentic-research/locus/internal/graph"
)

var (
	showMoves []string
	showJSON  bool
)

func init() {
	showCmd.Flags().StringArrayVarP(&showMoves, "move", "m", nil, "Move a node before printing, as from:id (repeatable, applied in order)")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the state as JSON")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Load the data, apply moves and print both lists",
	Example: `  locus show --data assets/data.json --move available:1 --move active:11
  locus show --data places.db --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWidget(cmd.Context(), cmd)
		if err != nil {
			return err
		}

		for _, arg := range showMoves {
			from, id, err := parseMove(arg)
			if err != nil {
				return err
			}
			res, err := w.Click(from, id, nil)
			if err != nil {
				return fmt.Errorf("move %s: %w", arg, err)
			}
			if !showJSON {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", res)
			}
		}

		st := w.Snapshot()
		if showJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		}
		printState(cmd.OutOrStdout(), st)
		return nil
	},
}

// parseMove splits "from:id".
func parseMove(arg string) (graph.CollectionID, graph.NodeID, error) {
	name, idStr, ok := strings.Cut(arg, ":")
	if !ok {
		return 0, 0, fmt.Errorf("move %q: want from:id", arg)
	}
	from, err := graph.ParseCollectionID(name)
	if err != nil {
		return 0, 0, err
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("move %q: bad id: %w", arg, err)
	}
	return from, graph.NodeID(id), nil
}

func printState(out io.Writer, st api.State) {
	if st.LoadError != "" {
		fmt.Fprintf(out, "load error: %s\n", st.LoadError)
	}
	printList(out, "Available", st.Available)
	printList(out, "Active", st.Active)
	fmt.Fprintf(out, "Markers (%d):\n", len(st.Markers))
	for _, m := range st.Markers {
		fmt.Fprintf(out, "  %-6d %-20s %v, %v\n", m.NodeID, m.Name, m.Lat, m.Lng)
	}
}

func printList(out io.Writer, title string, nodes []api.NodeView) {
	fmt.Fprintf(out, "%s (%d):\n", title, len(nodes))
	for _, n := range nodes {
		suffix := ""
		if n.Group {
			suffix = "/"
		}
		fmt.Fprintf(out, "  %-6d %s%s\n", n.ID, n.Name, suffix)
		for _, c := range n.Children {
			fmt.Fprintf(out, "    %-6d %s\n", c.ID, c.Name)
		}
	}
}
