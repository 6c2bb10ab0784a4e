package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/app"
	"github.com/abhisek/quizdeck/internal/exam"
	"github.com/abhisek/quizdeck/internal/logger"
	"github.com/abhisek/quizdeck/internal/store"
)

// runApp opens the journal, imports any files given on the command line
// and launches the TUI.
func runApp(cmd *cobra.Command, files []string) error {
	ctx := cmd.Context()
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	debug, _ := cmd.Flags().GetBool("debug")
	closeLog, err := logger.Init(resolveLogPath(cmd), debug)
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := store.OpenMemory()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	engine := exam.NewEngine(cfg,
		exam.WithEventRepo(st.EventRepo()),
		exam.WithLogger(slog.Default()),
	)
	if len(files) > 0 {
		// Problems show on the home screen.
		if res := engine.ImportFiles(ctx, files); !res.OK() {
			logger.Warn("startup import rejected", "files", len(files), "error", res.Err)
		}
	}

	logger.Info("starting", "files", len(files), "mode", string(cfg.Mode),
		"minutes", cfg.TimeLimitMinutes, "strict", cfg.Strict)
	if err := app.Run(engine); err != nil {
		logger.Error("program exited with error", "error", err)
		return err
	}
	return nil
}
