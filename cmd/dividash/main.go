package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"dividash/internal/config"
	"dividash/internal/session"
	"dividash/internal/tui"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		cfgPath  string
		data     string
		topology string
		sessPath string
		noSess   bool
	)
	cmd := &cobra.Command{
		Use:   "dividash",
		Short: "Terminal dashboard for state-level digital divide metrics",
		Long: `dividash renders US state broadband and income metrics as an
interactive terminal dashboard: a choropleth map, bar charts, a radar
view, and parallel coordinates over one shared selection.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if data != "" {
				cfg.DataPath = data
			}
			if topology != "" {
				cfg.TopologyPath = topology
			}
			if sessPath != "" {
				cfg.SessionPath = sessPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			var store *session.Store
			if !noSess {
				store, err = session.Open(cfg.SessionPath)
				if err != nil {
					return fmt.Errorf("opening session store: %w", err)
				}
				defer store.Close()
			}

			m := tui.New(cfg, store)
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
			return err
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "dividash.yaml", "config file path")
	cmd.Flags().StringVarP(&data, "data", "d", "", "metrics CSV path (overrides config)")
	cmd.Flags().StringVarP(&topology, "topology", "t", "", "state boundaries GeoJSON path (overrides config)")
	cmd.Flags().StringVar(&sessPath, "session", "", "session database path (overrides config)")
	cmd.Flags().BoolVar(&noSess, "no-session", false, "disable session persistence")
	return cmd
}
