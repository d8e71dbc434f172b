package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kyleking/db-scout/internal/config"
	"github.com/kyleking/db-scout/internal/logging"
)

var (
	flagDatabase string
	flagDriver   string
	flagPageSize int
	flagLogLevel string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "db-scout",
	Short: "Ask questions against a relational database in natural language",
	Long: `db-scout turns natural-language questions into read-only SQL against a
relational database. Generated and hand-written statements alike pass a
safety gate that rejects anything but a simple SELECT, and results are
served back in fixed-size pages.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.LoadConfig()
		if err != nil {
			logging.SetupFallbackLogger()
			return err
		}

		applyFlagOverrides(cmd, loaded)

		if err := logging.InitializeLogger(loaded.Logging); err != nil {
			logging.SetupFallbackLogger()
		}

		cfg = loaded

		return nil
	},
}

func applyFlagOverrides(cmd *cobra.Command, loaded *config.Config) {
	if cmd.Flags().Changed("database") {
		loaded.Database.Name = flagDatabase
	}

	if cmd.Flags().Changed("driver") {
		loaded.Database.Driver = flagDriver
	}

	if cmd.Flags().Changed("page-size") {
		loaded.Pagination.PageSize = flagPageSize
	}

	if cmd.Flags().Changed("log-level") {
		loaded.Logging.Level = flagLogLevel
	}
}

func Execute() error {
	ctx := context.Background()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDatabase, "database", "", "Target database identifier")
	rootCmd.PersistentFlags().StringVar(&flagDriver, "driver", "", "Database driver: memory, mysql or duckdb")
	rootCmd.PersistentFlags().IntVar(&flagPageSize, "page-size", 0, "Rows per result page")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn or error")
}
