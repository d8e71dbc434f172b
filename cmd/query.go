package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kyleking/db-scout/internal/paginate"
)

var queryAll bool

var queryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Run a raw SQL statement through the safety gate",
	Long: `Execute a hand-written SQL statement. The statement passes the same
safety gate as generated SQL: only simple SELECT statements reach the
database.

Examples:
  db-scout query "SELECT * FROM users"
  db-scout query --all "SELECT * FROM products LIMIT 10"`,
	Args: cobra.ExactArgs(1),
	RunE: runRawQuery,
}

func init() {
	queryCmd.Flags().BoolVar(&queryAll, "all", false, "Render every page instead of the first")

	rootCmd.AddCommand(queryCmd)
}

func runRawQuery(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	svc, cleanup, err := buildService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	sessionID := svc.NewSession()

	result := svc.RunQuery(ctx, sessionID, args[0])
	if !result.Success {
		return errors.New(result.Error)
	}

	for {
		page, err := svc.NextPage(sessionID)
		if errors.Is(err, paginate.ErrEndOfPages) {
			break
		}

		renderRows(out, page)

		if !queryAll {
			served := svc.CurrentPage(sessionID) * cfg.Pagination.PageSize
			if served < result.RowCount {
				fmt.Fprintf(out, "(%d of %d rows shown; rerun with --all for the rest)\n",
					served, result.RowCount)

				return nil
			}

			break
		}
	}

	fmt.Fprintf(out, "(%d rows)\n", result.RowCount)

	return nil
}
