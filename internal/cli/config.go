package cli

import (
	"github.com/spf13/cobra"
)

// AddConfigCommand adds the config command group to the root command.
func AddConfigCommand(root *cobra.Command, global *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and modify configuration",
		Long: `Inspect and modify git-llm configuration.

Configuration is resolved per key from five layers, lowest precedence
first: built-in defaults, the global file (~/.git-llm-tool/config.yaml),
the project file (./.git-llm-tool.yaml), environment variables, and
command-line flags. Credential keys (llm.api_keys.*) swap the project
file above the environment so a repository-pinned key wins.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newConfigShowCmd(global))
	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigInitCmd(global))

	root.AddCommand(cmd)
}
