package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/abhisek/quizdeck/internal/exam"
)

var rootCmd = &cobra.Command{
	Use:   "quizdeck [files...]",
	Short: "Timed multiple-choice practice in the terminal",
	Long: "QuizDeck imports multiple-choice question files and runs them as a timed exam " +
		"or a study set, with flagging, a review pass and scoring.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadDotEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	addConfigFlags(rootCmd.PersistentFlags())

	rootCmd.Flags().String("log", "", "Path to a JSON log file (overrides QUIZDECK_LOG env var)")
	rootCmd.Flags().Bool("debug", false, "Log at debug level")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

// addConfigFlags registers the flags that override exam.Config.
func addConfigFlags(flags *pflag.FlagSet) {
	flags.Int("minutes", 0, "Time limit in minutes (overrides QUIZDECK_TIME_LIMIT env var)")
	flags.String("mode", "", "Default mode: exam or study (overrides QUIZDECK_MODE env var)")
	flags.Bool("strict", false, "Reject a batch containing malformed question blocks (overrides QUIZDECK_STRICT env var)")
	flags.Uint64("seed", 0, "Shuffle seed, 0 for random (overrides QUIZDECK_SEED env var)")
}

// loadDotEnv reads .env from the working directory when it exists.
// Variables already set in the environment win.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load .env: %w", err)
}

// resolveConfig builds the session config from the environment, then
// applies any flags the user set explicitly.
func resolveConfig(cmd *cobra.Command) (exam.Config, error) {
	cfg := exam.ConfigFromEnv()
	flags := cmd.Flags()

	if flags.Changed("minutes") {
		m, _ := flags.GetInt("minutes")
		cfg.TimeLimitMinutes = m
		if m <= 0 {
			fmt.Fprintf(os.Stderr, "Invalid time limit %d, using the default.\n", m)
		}
	}
	if flags.Changed("mode") {
		v, _ := flags.GetString("mode")
		mode, err := exam.ParseMode(v)
		if err != nil {
			return cfg, err
		}
		cfg.Mode = mode
	}
	if flags.Changed("strict") {
		cfg.Strict, _ = flags.GetBool("strict")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}

	// Non-positive minutes are not an error; they fall back to the default.
	cfg.TimeLimitMinutes = cfg.TimeLimitSeconds() / 60
	return cfg, cfg.Validate()
}

// resolveLogPath returns --log if set, then QUIZDECK_LOG.
func resolveLogPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("log"); p != "" {
		return p
	}
	return os.Getenv("QUIZDECK_LOG")
}
