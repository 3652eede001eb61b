package cmd

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/app"
	"github.com/abhisek/mathdrill/internal/comms"
	"github.com/abhisek/mathdrill/internal/config"
	"github.com/abhisek/mathdrill/internal/level"
	"github.com/abhisek/mathdrill/internal/results"
	"github.com/abhisek/mathdrill/internal/store"
)

var rootCmd = &cobra.Command{
	Use:           "mathdrill",
	Short:         "Arithmetic practice in the terminal",
	Long:          "mathdrill — pick a level, solve a set of generated problems and optionally save your score.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSession,
}

// Execute runs the root command. When the user declines to save or asks to
// quit, the exit message is printed and the process exits with status 1.
func Execute() error {
	err := rootCmd.Execute()
	if errors.Is(err, comms.ErrExit) {
		fmt.Fprintln(os.Stderr, comms.ExitMessage)
		os.Exit(1)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides MATHDRILL_CONFIG env var)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite history database (overrides MATHDRILL_DB env var)")
	rootCmd.PersistentFlags().String("results", "", "Results file to append saved scores to")

	rootCmd.Flags().IntP("tasks", "n", 0, "Number of tasks in the session")
	rootCmd.Flags().IntP("level", "l", 0, "Level id to play (skips the level menu)")
	rootCmd.Flags().String("policy", "", "What to do with malformed answers: reenter or ignore")
	rootCmd.Flags().Uint64("seed", 0, "Seed for task generation (0 = random)")
	rootCmd.Flags().Bool("no-history", false, "Do not record the session in the history database")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if p, _ := cmd.Flags().GetString("results"); p != "" {
		cfg.ResultsFile = p
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.HistoryDB = p
	}
	return cfg, nil
}

// resolveDBPath returns the configured history path, or the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.HistoryDB != "" {
		return cfg.HistoryDB, store.EnsureDir(cfg.HistoryDB)
	}
	return store.DefaultDBPath()
}

func runSession(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("tasks") {
		cfg.TotalTasks, _ = cmd.Flags().GetInt("tasks")
	}
	if cmd.Flags().Changed("level") {
		cfg.Level, _ = cmd.Flags().GetInt("level")
	}
	if p, _ := cmd.Flags().GetString("policy"); p != "" {
		cfg.FailurePolicy = p
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	opts := app.Options{
		Comms: comms.New(cmd.InOrStdin(), cmd.OutOrStdout(),
			comms.WithDefaultText(cfg.Prompt),
			comms.WithFailurePolicy(cfg.Policy()),
		),
		Levels:     level.Default(),
		TotalTasks: cfg.TotalTasks,
		Results:    results.NewFileSink(cfg.ResultsFile),
		Warnings:   cmd.ErrOrStderr(),
	}

	if cfg.Level != 0 {
		lvl, ok := opts.Levels.Get(cfg.Level)
		if !ok {
			return fmt.Errorf("unknown level %d (see `mathdrill levels`)", cfg.Level)
		}
		opts.Level = &lvl
	}

	if seed, _ := cmd.Flags().GetUint64("seed"); seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(seed, seed))
	}

	// History is optional; the session runs without it.
	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		if st, err := openHistory(cfg); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: history unavailable:", err)
		} else {
			defer st.Close()
			opts.History = st.SessionRepo()
		}
	}

	a, err := app.New(opts)
	if err != nil {
		return err
	}
	return a.Run(ctx)
}

func openHistory(cfg *config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
