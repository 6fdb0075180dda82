// Package cli defines the cobra command tree for the museum booking server.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/museum-visit/internal/client"
)

var (
	flagFormat  string
	flagConfig  string
	flagServer  string
	flagEnvFile string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "museum",
		Short:         "Museum visit booking server",
		Long:          "Serves the mobile museum visit booking app and inspects running servers.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path (default: ~/.config/museum/config.yaml)")
	root.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "file of MUSEUM_* variables loaded before the config")
	root.PersistentFlags().StringVar(&flagServer, "server", "", "server URL for remote commands (default: base_url from config)")

	root.AddCommand(
		newServeCmd(),
		newPagesCmd(),
		newStatusCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// newAPIClient creates an HTTP client for the configured server.
func newAPIClient() (*client.Client, error) {
	url, err := getServerURL()
	if err != nil {
		return nil, err
	}
	return client.New(url)
}

// getServerURL returns the --server flag, MUSEUM_SERVER_URL, or the
// configured base URL, in that order.
func getServerURL() (string, error) {
	if flagServer != "" {
		return flagServer, nil
	}
	if v := os.Getenv("MUSEUM_SERVER_URL"); v != "" {
		return v, nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	return cfg.BaseURL, nil
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
