package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/exam"
)

var checkCmd = &cobra.Command{
	Use:   "check files...",
	Short: "Validate question files without starting a session",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		return runCheck(cmd.Context(), cfg, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// runCheck imports files headless. Problems go to errOut, the question
// count to out. A rejected batch is an error.
func runCheck(ctx context.Context, cfg exam.Config, files []string, out, errOut io.Writer) error {
	engine := exam.NewEngine(cfg, exam.WithLogger(slog.New(slog.DiscardHandler)))
	res := engine.ImportFiles(ctx, files)

	for _, m := range res.Messages() {
		fmt.Fprintln(errOut, m)
	}
	if !res.OK() {
		return fmt.Errorf("check %d file(s): %w", len(files), res.Err)
	}
	fmt.Fprintf(out, "%d questions from %d file(s)\n", len(res.Questions), res.Sources)
	if len(res.Dropped) > 0 {
		fmt.Fprintf(out, "%d malformed block(s) skipped\n", len(res.Dropped))
	}
	return nil
}
