package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrz1836/git-llm-tool/internal/config"
	"github.com/mrz1836/git-llm-tool/internal/tui"
)

// newConfigSetCmd creates the "config set" command.
func newConfigSetCmd() *cobra.Command {
	var project bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set one configuration key in the global config file, or in the
repository's project file with --project. Keys the tool does not recognize
are rejected; content the tool does not manage is preserved.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyPath, value := args[0], args[1]

			path, err := targetConfigPath(project)
			if err != nil {
				return err
			}

			if err := config.SetValue(cmd.Context(), path, keyPath, value); err != nil {
				return err
			}

			out := tui.NewTTYOutput(cmd.OutOrStdout())
			if config.IsSecretKey(keyPath) {
				out.Success(keyPath + " = " + config.MaskValue(value) + " (" + path + ")")
			} else {
				out.Success(keyPath + " = " + value + " (" + path + ")")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&project, "project", "p", false, "write to the project file instead of the global file")
	return cmd
}

// targetConfigPath returns the file "config set" writes to.
func targetConfigPath(project bool) (string, error) {
	if project {
		return config.ProjectConfigPath(), nil
	}
	return config.GlobalConfigPath()
}
