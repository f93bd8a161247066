package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kpumuk/nodescope/internal/config"
	"github.com/kpumuk/nodescope/internal/devtools"
	"github.com/kpumuk/nodescope/internal/logging"
	"github.com/kpumuk/nodescope/internal/node"
	"github.com/kpumuk/nodescope/internal/pipeline"
	"github.com/kpumuk/nodescope/internal/store"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configPath  string
	redis       string
	data        string
	lookback    config.Duration
	maxPoints   int
	bucket      config.Duration
	concurrency int
	logLevel    string
	logFile     string
	cpuprofile  string
	debugRedis  bool
}

func (o *globalOptions) register(flags *pflag.FlagSet) {
	flags.StringVarP(&o.configPath, "config", "c", "", "YAML configuration file")
	flags.StringVar(&o.redis, "redis", store.DefaultRedisURL, "redis URL")
	flags.StringVar(&o.data, "data", "", "read nodes from a JSON or YAML file instead of Redis")
	flags.Var(&o.lookback, "lookback", "chart window before the latest reading (e.g. 30h or PT30H, 0 for all)")
	flags.IntVar(&o.maxPoints, "max-points", 0, "keep at most this many points per chart (0 for all)")
	flags.Var(&o.bucket, "bucket", "align rollup timestamps to buckets of this size (0 for exact)")
	flags.IntVar(&o.concurrency, "concurrency", pipeline.DefaultConcurrency, "nodes fetched in parallel")
	flags.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&o.logFile, "log-file", "", "append logs to this file")
	flags.StringVar(&o.cpuprofile, "cpuprofile", "", "write cpu profile to file")
	flags.BoolVar(&o.debugRedis, "debug-redis", false, "log every Redis command at exit")
}

// loadConfig layers changed flags over the loaded configuration.
func (o *globalOptions) loadConfig(flags *pflag.FlagSet) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, err
	}
	if flags.Changed("redis") {
		cfg.Redis = o.redis
	}
	if flags.Changed("data") {
		cfg.Data = o.data
	}
	if flags.Changed("lookback") {
		cfg.Window.Lookback = o.lookback
	}
	if flags.Changed("max-points") {
		cfg.Window.MaxPoints = o.maxPoints
	}
	if flags.Changed("bucket") {
		cfg.Bucket = o.bucket
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = o.concurrency
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = o.logFile
	}
	return cfg, cfg.Validate()
}

// scopeSource is a pipeline source that can also enumerate its scopes.
type scopeSource interface {
	pipeline.Source
	Scopes(ctx context.Context) ([]node.Scope, error)
}

// session holds what one command invocation opens.
type session struct {
	cfg     config.Config
	logger  *slog.Logger
	source  scopeSource
	client  *store.Client
	tracker *devtools.Tracker
	// reporter receives the Redis command log on Close, even when logger
	// is silenced.
	reporter *slog.Logger
	closers  []func() error
}

// sessionMode selects how a session is opened.
type sessionMode struct {
	// quiet drops terminal logging, for commands that own the screen.
	quiet bool
	// redis ignores any configured dataset file.
	redis bool
}

// openSession loads configuration, logging and the node source.
func openSession(cmd *cobra.Command, opts *globalOptions, mode sessionMode) (*session, error) {
	cfg, err := opts.loadConfig(cmd.Flags())
	if err != nil {
		return nil, err
	}
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg}
	switch {
	case cfg.Log.File != "":
		logger, closeLog, err := logging.OpenFile(cfg.Log.File, level)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		s.logger = logger
		s.closers = append(s.closers, closeLog)
	case mode.quiet:
		s.logger = logging.Discard()
	default:
		s.logger = logging.New(cmd.ErrOrStderr(), level, cfg.Log.NoColor)
	}

	if opts.debugRedis {
		s.tracker = devtools.NewTracker()
		s.reporter = s.logger
		if cfg.Log.File == "" {
			s.reporter = logging.New(cmd.ErrOrStderr(), slog.LevelInfo, cfg.Log.NoColor)
		}
	}

	if cfg.Data != "" && !mode.redis {
		dataset, err := store.LoadDataset(cfg.Data)
		if err != nil {
			_ = s.Close(cmd.Context())
			return nil, err
		}
		s.source = dataset
		s.logger.Debug("using dataset", "path", cfg.Data, "nodes", len(dataset.Nodes()))
		return s, nil
	}

	if err := s.openRedis(); err != nil {
		_ = s.Close(cmd.Context())
		return nil, err
	}
	s.source = s.client
	return s, nil
}

func (s *session) openRedis() error {
	client, err := store.NewClient(s.cfg.Redis)
	if err != nil {
		return fmt.Errorf("create redis client: %w", err)
	}
	s.client = client.WithTracker(s.tracker)
	s.closers = append(s.closers, client.Close)
	s.logger.Debug("using redis", "url", client.DisplayRedisURL())
	return nil
}

// service returns a chart service configured from the session.
func (s *session) service() *pipeline.Service {
	svc := pipeline.NewService(s.source, s.logger)
	svc.Policy = s.cfg.Policy()
	svc.Concurrency = s.cfg.Concurrency
	return svc
}

// Close reports tracked Redis commands and releases everything the session
// opened.
func (s *session) Close(ctx context.Context) error {
	if s.tracker != nil && s.reporter != nil {
		s.tracker.Report(ctx, s.reporter)
	}
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}

// stdoutIsTerminal reports whether w is an interactive stdout.
func stdoutIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(f.Fd())
}
