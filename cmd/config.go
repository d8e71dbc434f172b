package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display the active configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Active Configuration:")

	fmt.Fprintln(out, "\nDatabase:")
	fmt.Fprintf(out, "  Driver: %s\n", cfg.Database.Driver)
	fmt.Fprintf(out, "  Name: %s\n", cfg.Database.Name)

	if cfg.Database.Driver == "mysql" {
		fmt.Fprintf(out, "  Host: %s:%d\n", cfg.Database.Host, cfg.Database.Port)
		fmt.Fprintf(out, "  User: %s\n", cfg.Database.User)
		fmt.Fprintf(out, "  Password: %s\n", maskSecret(cfg.Database.Password))
	}

	if cfg.Database.Driver == "duckdb" {
		fmt.Fprintf(out, "  Path: %s\n", cfg.Database.Path)
	}

	fmt.Fprintln(out, "\nLLM:")
	fmt.Fprintf(out, "  Provider: %s\n", cfg.LLM.Provider)
	fmt.Fprintf(out, "  Model: %s\n", cfg.LLM.Model)
	fmt.Fprintf(out, "  API Key: %s\n", maskSecret(cfg.LLM.APIKey))
	fmt.Fprintf(out, "  Max Tokens: %d\n", cfg.LLM.MaxTokens)
	fmt.Fprintf(out, "  Temperature: %.2f\n", cfg.LLM.Temperature)

	fmt.Fprintln(out, "\nPagination:")
	fmt.Fprintf(out, "  Page Size: %d\n", cfg.Pagination.PageSize)

	fmt.Fprintln(out, "\nPolicy:")
	fmt.Fprintf(out, "  Block Sensitive Columns: %t\n", cfg.Policy.BlockSensitive)
	fmt.Fprintf(out, "  Blocked Fragments: %s\n", strings.Join(cfg.Policy.BlockedColumns, ", "))

	fmt.Fprintln(out, "\nLogging:")
	fmt.Fprintf(out, "  Level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  Format: %s\n", cfg.Logging.Format)
	fmt.Fprintf(out, "  Output: %s\n", cfg.Logging.Output)

	return nil
}

func maskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}

	return "********"
}
