package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrz1836/git-llm-tool/internal/cli/workflow"
	"github.com/mrz1836/git-llm-tool/internal/config"
	"github.com/mrz1836/git-llm-tool/internal/tui"
)

// shownKeyEntry is one row of the JSON form of "config show".
type shownKeyEntry struct {
	Value  string `json:"value"`
	Origin string `json:"origin"`
	Source string `json:"source"`
}

// newConfigShowCmd creates the "config show" command.
func newConfigShowCmd(global *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration with provenance",
		Long: `Show every resolved configuration key, its value, and the layer that
supplied it. Secret values are masked; full credentials are never printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			tui.CheckNoColor()

			cfg, err := workflow.LoadConfig(ctx, nil)
			if err != nil {
				return err
			}

			if global.Output == OutputJSON {
				return showJSON(cmd, cfg)
			}
			showTable(cmd, cfg)
			return nil
		},
	}
}

// showTable renders the provenance table for terminal display.
func showTable(cmd *cobra.Command, cfg *config.Resolved) {
	table := tui.NewTable(cmd.OutOrStdout(), []tui.TableColumn{
		{Name: "KEY", Width: 36},
		{Name: "VALUE", Width: 32},
		{Name: "ORIGIN", Width: 14},
	})
	table.WriteHeader()

	for _, key := range cfg.Keys() {
		provenance, _ := cfg.Origin(key)
		if provenance.Origin == config.OriginDefault {
			table.WriteDimRow(key, displayValue(cfg, key), provenance.Origin.String())
			continue
		}
		table.WriteRow(key, displayValue(cfg, key), provenance.Origin.String())
	}
}

// showJSON renders the resolved configuration as JSON.
func showJSON(cmd *cobra.Command, cfg *config.Resolved) error {
	out := tui.NewJSONOutput(cmd.OutOrStdout())

	entries := make(map[string]shownKeyEntry, len(cfg.Keys()))
	for _, key := range cfg.Keys() {
		provenance, _ := cfg.Origin(key)
		entries[key] = shownKeyEntry{
			Value:  displayValue(cfg, key),
			Origin: provenance.Origin.String(),
			Source: provenance.Source,
		}
	}
	return out.JSON(entries)
}

// displayValue returns the printable value of a key, masked for secrets.
func displayValue(cfg *config.Resolved, key string) string {
	value := cfg.GetString(key)
	if value == "" {
		return ""
	}
	if config.IsSecretKey(key) {
		return config.MaskValue(value)
	}
	return value
}
