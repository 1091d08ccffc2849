// Package cli implements the adminctl command-line interface: record CRUD
// and seeding over whichever store backend the configuration selects.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/simp-lee/storeadmin/internal/app"
	"github.com/simp-lee/storeadmin/internal/config"
	"github.com/simp-lee/storeadmin/internal/event"
	"github.com/simp-lee/storeadmin/internal/resource"
	"github.com/simp-lee/storeadmin/internal/store"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

const defaultConfigPath = "configs/config.yaml"

// session is the state shared by every subcommand of one invocation.
type session struct {
	configPath string
	jsonMode   bool
	verbose    bool

	backend  store.Backend
	events   event.Publisher
	services map[string]*resource.Service
	log      *slog.Logger

	// closers run in reverse order after the command finishes.
	closers []func() error
	// injected skips config loading and uses this backend instead.
	injected store.Backend
}

// Option customizes the root command.
type Option func(*session)

// WithBackend makes every command operate on b instead of the configured
// backend.
func WithBackend(b store.Backend) Option {
	return func(s *session) { s.injected = b }
}

// NewRootCmd creates the top-level "adminctl" command with global flags
// and all subcommands registered.
func NewRootCmd(opts ...Option) *cobra.Command {
	s := &session{}
	for _, opt := range opts {
		opt(s)
	}

	root := &cobra.Command{
		Use:   "adminctl",
		Short: "Manage store admin records from the command line",
		Long: `adminctl lists, reads, creates, updates and deletes store admin records
(orders, products, categories, media, notifications, users, pages, logs)
and seeds default data, using the backend selected in the configuration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return s.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return s.close()
		},
	}

	root.PersistentFlags().StringVar(&s.configPath, "config", defaultConfigPath, "path to configuration file")
	root.PersistentFlags().BoolVar(&s.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "log at the configured level instead of warn")

	root.AddCommand(
		newListCmd(s),
		newGetCmd(s),
		newCreateCmd(s),
		newUpdateCmd(s),
		newDeleteCmd(s),
		newSeedCmd(s),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if isUserError(err) {
			return exitUserError
		}
		return exitSysError
	}
	return exitSuccess
}

func (s *session) open() error {
	if s.injected != nil {
		s.backend = s.injected
		s.events = event.Nop{}
		s.log = slog.Default()
		s.services = app.Services(s.backend, s.events, s.log)
		return nil
	}

	cfg, err := config.Load(s.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !s.verbose {
		cfg.Log.Level = "warn"
	}

	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	s.closers = append(s.closers, log.Close)

	backend, db, err := app.OpenStore(cfg, log.Logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	if db != nil {
		s.closers = append(s.closers, closeDB(db))
	}

	pub, err := app.OpenPublisher(&cfg.Events, log.Logger)
	if err != nil {
		return fmt.Errorf("open event publisher: %w", err)
	}
	if c, ok := pub.(interface{ Close() error }); ok {
		s.closers = append(s.closers, c.Close)
	}

	s.backend = backend
	s.events = pub
	s.log = log.Logger
	s.services = app.Services(backend, pub, log.Logger)
	return nil
}

func (s *session) close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	s.closers = nil
	return first
}

func closeDB(db *gorm.DB) func() error {
	return func() error { return config.CloseDatabase(db) }
}
