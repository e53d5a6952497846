package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRoutesCommand creates the routes command.
func NewRoutesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the routes advertised by the API",
		Long:  "Fetch <url>/<api-version> and print the decoded body, whatever the response status",
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

			routes, err := conn.Routes(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get routes: %w", err)
			}

			return renderer.Render(cmd.Context(), routes)
		},
	}
}
