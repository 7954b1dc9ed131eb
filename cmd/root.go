package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentic-research/locus/api"
	"github.com/agentic-research/locus/internal/config"
	"github.com/agentic-research/locus/internal/ingest"
	"github.com/agentic-research/locus/internal/logger"
	"github.com/agentic-research/locus/internal/widget"
)

var version = "dev"

var (
	configPath string
	dataPath   string
	selector   string
	debug      bool

	cfg *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (.hcl, .json, .yaml)")
	rootCmd.PersistentFlags().StringVarP(&dataPath, "data", "d", "", "Data source: JSON file, http(s) URL or .db file")
	rootCmd.PersistentFlags().StringVar(&selector, "selector", "", "JSONPath selecting the location list in the payload")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write debug logs to stderr")
}

var rootCmd = &cobra.Command{
	Use:           "locus",
	Short:         "locus: move locations between two lists and see the active ones on a map",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("data") {
			c.Data.Source = dataPath
		}
		if cmd.Flags().Changed("selector") {
			c.Data.Selector = selector
		}
		cfg = c

		opts := c.LoggerOptions()
		if debug {
			opts = logger.Options{Enabled: true, Stderr: true, Level: slog.LevelDebug}
		}
		return logger.Init(opts)
	},
}

// widgetSettings maps the loaded config onto the widget.
func widgetSettings(c *config.Config) widget.Settings {
	return widget.Settings{
		Bounds:    c.ScatterBounds(),
		Precision: *c.Map.Precision,
		Map: api.MapView{
			Center:  [2]float64{c.Map.Center[0], c.Map.Center[1]},
			Zoom:    c.Map.Zoom,
			TileURL: c.Map.TileURL,
		},
	}
}

// openWidget builds and loads the widget. A load failure is reported but not
// fatal: the widget starts with an empty "available" list.
func openWidget(ctx context.Context, cmd *cobra.Command) (*widget.Widget, error) {
	l, err := ingest.NewLoader(cfg.Data.Source, cfg.Data.Selector)
	if err != nil {
		return nil, err
	}
	w := widget.New(l, widgetSettings(cfg))
	if err := w.Load(ctx); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
	return w, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
