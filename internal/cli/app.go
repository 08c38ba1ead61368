package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/codalotl/retransdiff/internal/config"
	"github.com/codalotl/retransdiff/internal/simplelogger"
	"github.com/codalotl/retransdiff/internal/store"
)

// app holds per-invocation state shared by commands. Resources are opened lazily by load.
type app struct {
	in        io.Reader
	out       io.Writer
	err       io.Writer
	lookupEnv func(string) (string, bool)
	workDir   string

	configPath string // --config

	cfg     *config.Config
	logger  zerolog.Logger
	store   *store.Store
	closers []io.Closer
}

func newApp(opts *RunOptions) *app {
	in, out, errW := defaultIO(opts)
	a := &app{in: in, out: out, err: errW, lookupEnv: os.LookupEnv, logger: zerolog.Nop()}
	if opts != nil {
		if opts.LookupEnv != nil {
			a.lookupEnv = opts.LookupEnv
		}
		a.workDir = opts.WorkDir
	}
	return a
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "retransdiff",
		Short:         "Compare a text with its retranslation and selectively revert changes",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: $"+config.EnvConfig+" or the nearest "+config.FileName+")")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	root.AddCommand(
		a.diffCommand(),
		a.rebuildCommand(),
		a.historyCommand(),
		a.settingsCommand(),
		a.serveCommand(),
		a.languagesCommand(),
	)
	return root
}

// load resolves config, starts logging, opens the store, and overlays stored settings. It is idempotent.
func (a *app) load(ctx context.Context) error {
	if a.cfg != nil {
		return nil
	}
	cfg, err := config.Load(config.Options{Path: a.configPath, WorkDir: a.workDir, LookupEnv: a.lookupEnv})
	if err != nil {
		return err
	}

	level, err := simplelogger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	logger, closer := simplelogger.New(level)
	a.logger = logger
	a.closers = append(a.closers, closer)

	st, err := store.Open(ctx, cfg.DBPath, logger)
	if err != nil {
		return err
	}
	a.store = st
	a.closers = append(a.closers, st)

	settings, err := st.AllSettings(ctx)
	if err != nil {
		return err
	}
	if err := cfg.ApplySettings(settings); err != nil {
		return fmt.Errorf("stored settings: %w", err)
	}
	a.cfg = cfg
	logger.Debug().Str("db_path", cfg.DBPath).Str("default_lang", cfg.DefaultLang).Msg("config loaded")
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
	a.closers = nil
}

// readInputs reads each path, with "-" meaning stdin. At most one path may be "-".
func (a *app) readInputs(paths ...string) ([]string, error) {
	stdin := 0
	for _, p := range paths {
		if p == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return nil, usageErrorf("at most one input may be read from stdin (-)")
	}

	out := make([]string, len(paths))
	for i, p := range paths {
		if p == "-" {
			b, err := io.ReadAll(a.in)
			if err != nil {
				return nil, fmt.Errorf("read stdin: %w", err)
			}
			out[i] = string(b)
			continue
		}
		if a.workDir != "" && !filepath.IsAbs(p) {
			p = filepath.Join(a.workDir, p)
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		out[i] = string(b)
	}
	return out, nil
}

// useColor decides whether to emit ANSI colors for mode ("auto", "always", "never"). auto means out is a terminal and NO_COLOR is unset.
func (a *app) useColor(mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		if _, ok := a.lookupEnv("NO_COLOR"); ok {
			return false, nil
		}
		f, ok := a.out.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	}
	return false, usageErrorf("invalid --color %q (want auto, always, or never)", mode)
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageErrorf("%s requires %d argument(s), got %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageErrorf("%s takes no arguments, got %q", cmd.CommandPath(), args[0])
	}
	return nil
}
