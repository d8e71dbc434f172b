package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show the introspected schema of the target database",
	Args:  cobra.NoArgs,
	RunE:  runSchema,
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables of the target database",
	Args:  cobra.NoArgs,
	RunE:  runTables,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(tablesCmd)
}

func runSchema(cmd *cobra.Command, _ []string) error {
	svc, cleanup, err := buildService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	snapshot, err := svc.GetSchema(cmd.Context(), cfg.Database.Name)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), snapshot.Render())

	return nil
}

func runTables(cmd *cobra.Command, _ []string) error {
	svc, cleanup, err := buildService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	tables, err := svc.ListTables(cmd.Context(), cfg.Database.Name)
	if err != nil {
		return err
	}

	for _, name := range tables {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}

	return nil
}
