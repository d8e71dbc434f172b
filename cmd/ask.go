package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/kyleking/db-scout/internal/paginate"
	"github.com/kyleking/db-scout/internal/service"
	"github.com/kyleking/db-scout/internal/types"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a natural-language question against the database",
	Long: `Translate a natural-language question into SQL and run it through the
safety gate. With no argument, starts an interactive loop; inside the loop
'next' pages through the last result and '.quit' exits.

Examples:
  db-scout ask "list all users"
  db-scout ask "the three most expensive products"
  db-scout ask`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, cleanup, err := buildService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	sessionID := svc.NewSession()

	if len(args) == 1 {
		return askOnce(ctx, cmd, svc, sessionID, args[0])
	}

	return askLoop(ctx, cmd, svc, sessionID)
}

// askOnce answers a single question and renders every page of the result.
func askOnce(
	ctx context.Context,
	cmd *cobra.Command,
	svc *service.Service,
	sessionID, question string,
) error {
	out := cmd.OutOrStdout()

	translation, result := askWithSpinner(ctx, svc, sessionID, question)
	if translation.Error != "" {
		return fmt.Errorf("translation failed: %s", translation.Error)
	}

	fmt.Fprintf(out, "SQL: %s (confidence %d)\n", translation.SQL, translation.Confidence)

	if !result.Success {
		return errors.New(result.Error)
	}

	for {
		page, err := svc.NextPage(sessionID)
		if errors.Is(err, paginate.ErrEndOfPages) {
			break
		}

		renderRows(out, page)
	}

	fmt.Fprintf(out, "(%d rows)\n", result.RowCount)

	return nil
}

// askLoop runs the interactive loop: question lines translate and execute,
// 'next' serves the following page of the last result.
func askLoop(ctx context.Context, cmd *cobra.Command, svc *service.Service, sessionID string) error {
	out := cmd.OutOrStdout()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "db-scout> ",
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize interactive loop: %w", err)
	}
	defer func() { _ = rl.Close() }()

	fmt.Fprintln(out, "Ask questions in natural language. 'next' pages results, '.quit' exits.")
	fmt.Fprintln(out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}

		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch line {
		case ".quit", ".exit":
			return nil
		case "next":
			page, err := svc.NextPage(sessionID)
			if errors.Is(err, paginate.ErrEndOfPages) {
				fmt.Fprintln(out, "No more pages.")
				continue
			}

			renderRows(out, page)
			fmt.Fprintf(out, "(page %d)\n", svc.CurrentPage(sessionID))

			continue
		}

		translation, result := askWithSpinner(ctx, svc, sessionID, line)
		if translation.Error != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", translation.Error)
			continue
		}

		fmt.Fprintf(out, "SQL: %s (confidence %d)\n", translation.SQL, translation.Confidence)

		if !result.Success {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", result.Error)
			continue
		}

		page, err := svc.NextPage(sessionID)
		if err == nil {
			renderRows(out, page)
		}

		fmt.Fprintf(out, "(%d rows; 'next' for more)\n", result.RowCount)
	}

	return nil
}

// askWithSpinner shows progress while the model call is in flight.
func askWithSpinner(
	ctx context.Context,
	svc *service.Service,
	sessionID, question string,
) (types.TranslationResult, types.QueryResult) {
	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	sp.Suffix = " translating..."
	sp.Start()

	defer sp.Stop()

	return svc.Ask(ctx, sessionID, cfg.Database.Name, question)
}
