package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/moneybags-dev/moneybags/internal/buildinfo"
	"github.com/moneybags-dev/moneybags/internal/config"
	"github.com/moneybags-dev/moneybags/internal/log"
	"github.com/moneybags-dev/moneybags/internal/shell"
	"github.com/moneybags-dev/moneybags/internal/store"
)

type rootOptions struct {
	file       string
	configPath string
	autosave   bool
	verbose    bool
	year       int
}

// NewRootCommand creates the moneybags CLI. Without arguments it starts the
// interactive shell; with arguments it runs them as a single shell command.
func NewRootCommand() *cobra.Command {
	var opts rootOptions

	rootCmd := &cobra.Command{
		Use:   "moneybags [command...]",
		Short: "Yearly costs vs invoicing tracker",
		Long: "Keeps track of hourly rates, invoices and one-off or monthly costs for a year,\n" +
			"and shows how far invoicing is from covering the costs.\n\n" +
			"Run without a command for an interactive shell; type \"help\" there for the commands.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &opts, args)
		},
	}

	flags := rootCmd.Flags()
	// Flags after the first command word belong to that command, e.g. --rate.
	flags.SetInterspersed(false)
	flags.StringVarP(&opts.file, "file", "f", config.DefaultFile, "file to store data in")
	flags.BoolVarP(&opts.autosave, "autosave", "a", false, "save after every change")
	flags.IntVar(&opts.year, "year", 0, "year of a new ledger (default: year of its first dated record)")
	flags.StringVar(&opts.configPath, "config", "", "YAML config file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	return rootCmd
}

func run(cmd *cobra.Command, opts *rootOptions, args []string) error {
	logger := log.New(cmd.ErrOrStderr(), log.Config{Verbose: opts.verbose, Component: "moneybags"})
	cfg, yearSet, err := resolveConfig(cmd, opts, logger, time.Now())
	if err != nil {
		return err
	}

	path, err := store.ExpandPath(cfg.File)
	if err != nil {
		return err
	}
	st := store.New(path, cfg.Year)
	if !yearSet {
		// Without a configured year, a new ledger takes the year of its first dated record.
		st = store.NewProvisional(path, cfg.Year)
	}
	l, err := st.Load()
	if err != nil {
		return fmt.Errorf("loading ledger (use --file to pick another): %w", err)
	}
	logger.Debug("loaded ledger", "path", path, "year", l.Year(), "autosave", cfg.Autosave)

	if len(args) > 0 {
		// One-shot commands always persist their changes.
		session := shell.NewSession(l, st, cmd.OutOrStdout(), shell.Options{Autosave: true, Logger: logger})
		c, err := shell.ParseArgs(args)
		if err != nil {
			return err
		}
		return session.Execute(c)
	}

	session := shell.NewSession(l, st, cmd.OutOrStdout(), shell.Options{Autosave: cfg.Autosave, Logger: logger})
	return session.Run(cmd.InOrStdin())
}

// resolveConfig layers flags over the environment over the config file over
// defaults. yearSet reports whether the year came from anywhere but the clock.
func resolveConfig(cmd *cobra.Command, opts *rootOptions, logger *slog.Logger, now time.Time) (cfg *config.Config, yearSet bool, err error) {
	cfg = &config.Config{}
	if opts.configPath != "" {
		loaded, created, err := config.LoadOrCreate(opts.configPath)
		if err != nil {
			return nil, false, err
		}
		if created {
			logger.Info("wrote default config", "path", opts.configPath)
		}
		cfg = loaded
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, false, err
	}

	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.File = opts.file
	}
	if flags.Changed("autosave") {
		cfg.Autosave = opts.autosave
	}
	if flags.Changed("year") {
		cfg.Year = opts.year
	}

	yearSet = cfg.Year != 0
	cfg.Merge(config.Default(now))
	return cfg, yearSet, nil
}
