package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/jsonapi-client/internal/constants"
	"github.com/fivetwenty-io/jsonapi-client/pkg/jsonapi"
)

// NewRouteCommand creates the route command.
func NewRouteCommand() *cobra.Command {
	var (
		filters  []string
		includes []string
	)

	cmd := &cobra.Command{
		Use:   "route ENDPOINT",
		Short: "Fetch a resource endpoint",
		Long: `Fetch <url>/<api-version>/<endpoint> and print the decoded body.

A JSON:API error document returned by the server is printed and the command
exits with an error. Other failures print the raw response body.`,
		Example: `  jsonapi route authors
  jsonapi route authors/1 --include books,books.chapters
  jsonapi route books --filter genre=fantasy --filter author=1 -o json`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return constants.ErrEndpointArgRequired
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := buildQueryParams(filters, includes)
			if err != nil {
				return err
			}

			renderer, err := NewRenderer(cmd.OutOrStdout(), viper.GetString("output"), viper.GetString("jq"))
			if err != nil {
				return err
			}

			conn, err := createConnection()
			if err != nil {
				return err
			}

			result, err := conn.Route(cmd.Context(), args[0], params)
			if err != nil {
				return fmt.Errorf("failed to get %s: %w", args[0], err)
			}

			err = renderer.Render(cmd.Context(), result)
			if err != nil {
				return err
			}

			return documentErrors(result)
		},
	}

	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "query parameter as key=value (repeatable)")
	cmd.Flags().StringSliceVarP(&includes, "include", "i", nil, "related resources to include, comma separated")

	return cmd
}

func buildQueryParams(filters, includes []string) (*jsonapi.QueryParams, error) {
	parsed, err := parseFilters(filters)
	if err != nil {
		return nil, err
	}

	return jsonapi.NewQueryParams().
		WithFilters(parsed).
		WithInclude(splitList(includes)...), nil
}

// documentErrors turns an error document returned as a value into a command
// failure, after it has been printed.
func documentErrors(result any) error {
	doc, err := jsonapi.AsDocument(result)
	if err != nil || !doc.HasErrors() {
		return nil
	}

	return fmt.Errorf("%w: %w", constants.ErrServerReturnedErrors, doc.ErrorDocument(0))
}
