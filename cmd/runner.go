package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/abook/internal/addressbook"
	"github.com/desertthunder/abook/internal/console"
	"github.com/desertthunder/abook/internal/repositories"
	"github.com/desertthunder/abook/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	input      io.Reader
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Input      io.Reader
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	if err := shared.ApplyLogLevel(opts.Logger, opts.Config.Log.Level); err != nil {
		opts.Logger.Warn("ignoring log level", "error", err)
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		input:      opts.Input,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, bookCommand, contactCommand, searchCommand, exportCommand, importCommand, shellCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig replaces the runner's config with the file named by --config.
//
// A missing file keeps the current config unless the flag was given explicitly.
func (r *Runner) loadConfig(cmd *cli.Command) error {
	path := cmd.String("config")
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if cmd.IsSet("config") {
			return fmt.Errorf("%w: %s (run `abook setup` to create it)", shared.ErrMissingConfig, path)
		}
		r.logger.Debug("config file not found, using current settings", "path", path)
		return nil
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		return err
	}
	r.config = config
	r.configPath = path
	return shared.ApplyLogLevel(r.logger, config.Log.Level)
}

// withManager loads the repository under the state lock, runs fn and, when save is set and fn
// succeeded, writes the repository back. Journal events left by fn are logged.
func (r *Runner) withManager(cmd *cli.Command, save bool, fn func(m *addressbook.Manager) error) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	lock, err := shared.AcquireStateLock(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("state database is busy: %w", err)
	}
	defer lock.Release()

	db, err := shared.OpenStateDatabase(r.config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	store := repositories.NewStore(db)
	m, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load address books: %w", err)
	}

	if err := fn(m); err != nil {
		return err
	}
	console.LogEvents(r.logger, m.Drain())

	if !save {
		return nil
	}
	if err := store.Save(m); err != nil {
		return fmt.Errorf("failed to save address books: %w", err)
	}
	r.logger.Debug("address books saved", "path", r.config.Database.Path, "books", m.Len())
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
