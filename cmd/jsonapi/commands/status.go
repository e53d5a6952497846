package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewStatusCommand creates the status command.
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Probe the API version root",
		Long:  "Send a HEAD request to <url>/<api-version> and print the status message and code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := NewRenderer(cmd.OutOrStdout(), viper.GetString("output"), viper.GetString("jq"))
			if err != nil {
				return err
			}

			conn, err := createConnection()
			if err != nil {
				return err
			}

			status, err := conn.Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get status: %w", err)
			}

			return renderer.Render(cmd.Context(), status)
		},
	}
}
