package commands

import (
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewVersionCommand creates the version command
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the jsonapi CLI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := NewRenderer(cmd.OutOrStdout(), viper.GetString("output"), viper.GetString("jq"))
			if err != nil {
				return err
			}

			return renderer.Render(cmd.Context(), map[string]any{
				"version": version,
				"commit":  commit,
				"built":   date,
				"go":      runtime.Version(),
			})
		},
	}
}
