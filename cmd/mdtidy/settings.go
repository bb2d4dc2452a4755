package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-mdtidy/internal/config"
)

// runSettings is the merged result of config file, environment and flags.
type runSettings struct {
	cfg       *config.Config
	workers   int
	keepGoing bool
	verify    bool
	diff      bool
	color     bool
	quiet     bool
	verbose   bool
	logger    *slog.Logger
}

// loadConfig resolves the config file. An explicit --config or
// MDTIDY_CONFIG must exist; otherwise the default name is optional.
// env.Config, when set, short-circuits the default lookup.
func loadConfig(flagConfig string, envCfg *envConfig, env *Environment) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}

	var (
		cfg *config.Config
		err error
	)
	switch {
	case name != "":
		cfg, err = config.LoadConfig(name)
	case env.Config != nil:
		cfg = env.Config
	default:
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	applyEnvConfig(envCfg, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	env.Config = cfg
	return cfg, nil
}

// resolveSettings merges flags over environment over config.
func resolveSettings(f *runFlags, env *Environment) (*runSettings, error) {
	envCfg := loadEnvConfig()
	cfg, err := loadConfig(f.common.config, envCfg, env)
	if err != nil {
		return nil, err
	}

	s := &runSettings{
		cfg:       cfg,
		workers:   cfg.Workers,
		keepGoing: cfg.KeepGoing,
		verify:    cfg.Verify || f.verify,
		diff:      f.diff,
		color:     useColor(f.color, env.Stdout),
		quiet:     f.common.quiet,
		verbose:   f.common.verbose,
	}
	if f.set["workers"] {
		s.workers = f.workers
	}
	if kg, ok := f.keepGoingOverride(); ok {
		s.keepGoing = kg
	}
	if s.workers > config.MaxWorkers {
		return nil, fmt.Errorf("%w: --workers must be <= %d, got %d", ErrInvalidFlag, config.MaxWorkers, s.workers)
	}

	s.logger = newLogger(env.Stderr, f.common, cfg.Log)
	warnUnknownEnvVars(s.logger)
	setMaxProcs(s.logger)
	return s, nil
}

// newLogger builds the slog logger for a run. --verbose lowers the level
// to debug and --quiet raises it to error; --log-format beats the config.
func newLogger(w io.Writer, f commonFlags, lc config.LogConfig) *slog.Logger {
	level := lc.SlogLevel()
	switch {
	case f.verbose:
		level = slog.LevelDebug
	case f.quiet:
		level = slog.LevelError
	}

	format := lc.Format
	if f.logFormat != "" {
		format = f.logFormat
	}

	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// setMaxProcs tunes GOMAXPROCS to the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(logger *slog.Logger) {
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))
}

// useColor resolves --color against the output writer. auto colors only a
// terminal, and never when NO_COLOR is set.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case colorAlways:
		return true
	case colorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
