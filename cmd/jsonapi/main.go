package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/jsonapi-client/cmd/jsonapi/commands"
	"github.com/fivetwenty-io/jsonapi-client/internal/constants"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "jsonapi",
	Short: "JSON:API client CLI",
	Long: `A command-line interface for querying servers that implement the JSON:API specification.

Requests are sent to <url>/<api-version>/<endpoint> with the JSON:API media type,
and responses are printed as a table, JSON or YAML.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.jsonapi/config.yml)")
	rootCmd.PersistentFlags().StringP("url", "u", "", "server base URL without the version segment (default http://localhost:8088)")
	rootCmd.PersistentFlags().String("api-version", "", "API version path segment (default v1)")
	rootCmd.PersistentFlags().String("content-type", "", "Content-Type sent with every request (default application/vnd.api+json)")
	rootCmd.PersistentFlags().StringArrayP("header", "H", nil, "extra request header as 'Name: value' (repeatable)")
	rootCmd.PersistentFlags().StringP("token", "t", "", "bearer token")
	rootCmd.PersistentFlags().String("client-id", "", "OAuth2 client ID for the client_credentials grant")
	rootCmd.PersistentFlags().String("client-secret", "", "OAuth2 client secret")
	rootCmd.PersistentFlags().String("token-url", "", "OAuth2 token endpoint")
	rootCmd.PersistentFlags().StringSlice("scopes", nil, "OAuth2 scopes, comma separated")
	rootCmd.PersistentFlags().Duration("timeout", constants.DefaultHTTPTimeout, "per-request timeout (0 disables)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (table, json, yaml); default table on a terminal, json otherwise")
	rootCmd.PersistentFlags().String("jq", "", "jq expression applied to the decoded response before printing")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log HTTP requests and responses to stderr")

	// Bind flags to viper
	for _, name := range []string{
		"config", "url", "api-version", "content-type", "header", "token", "client-id",
		"client-secret", "token-url", "scopes", "timeout", "output", "jq", "verbose",
	} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewStatusCommand())
	rootCmd.AddCommand(commands.NewRoutesCommand())
	rootCmd.AddCommand(commands.NewRouteCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in ~/.jsonapi/config.yml
		viper.AddConfigPath(filepath.Join(home, constants.ConfigDirName))
		viper.SetConfigType("yml")
		viper.SetConfigName(constants.ConfigFileName)
	}

	// Read in environment variables that match
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(commands.EnvKeyReplacer())
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
