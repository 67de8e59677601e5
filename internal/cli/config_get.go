package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrz1836/git-llm-tool/internal/cli/workflow"
	"github.com/mrz1836/git-llm-tool/internal/config"
	"github.com/mrz1836/git-llm-tool/internal/errors"
)

// newConfigGetCmd creates the "config get" command.
func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one resolved configuration value",
		Long: `Print the resolved value of one configuration key, after applying the
full layer precedence. Secret values are masked.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyPath := args[0]
			if _, ok := config.LookupKey(keyPath); !ok {
				return errors.Wrapf(errors.ErrUnknownConfigKey, "%s", keyPath)
			}

			cfg, err := workflow.LoadConfig(cmd.Context(), nil)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), displayValue(cfg, keyPath))
			return nil
		},
	}
}
