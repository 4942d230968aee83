package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartstore/store-system/internal/client"
)

var (
	serverURL string
	email     string
	password  string
)

var rootCmd = &cobra.Command{
	Use:   "store",
	Short: "Store management server and command line client",
	Long: `Runs the store management API or talks to a running one.

	store serve
	store --email admin@example.com --password secret stores list
`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("STORE_API_URL", "http://localhost:8080"), "API base URL")
	rootCmd.PersistentFlags().StringVar(&email, "email", os.Getenv("STORE_EMAIL"), "account email")
	rootCmd.PersistentFlags().StringVar(&password, "password", os.Getenv("STORE_PASSWORD"), "account password")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newClient() *client.Client {
	return client.New(serverURL, email, password)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
