package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotcheck/internal/services"
	"github.com/desertthunder/spotcheck/internal/shared"
	"github.com/desertthunder/spotcheck/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	configPath  string
	spotify     services.Service
	commentator services.Commentator
	httpClient  *http.Client
	logger      *log.Logger
	output      io.Writer
	engine      *tasks.TasteEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	ConfigPath  string
	Spotify     services.Service
	Commentator services.Commentator
	HTTPClient  *http.Client
	Logger      *log.Logger
	Output      io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	engine := tasks.NewTasteEngine(opts.Spotify, tasks.TasteEngineOpts{})

	return &Runner{
		config:      opts.Config,
		configPath:  opts.ConfigPath,
		spotify:     opts.Spotify,
		commentator: opts.Commentator,
		httpClient:  opts.HTTPClient,
		logger:      opts.Logger,
		output:      opts.Output,
		engine:      engine,
	}
}

// SetLogger swaps the runner's logger, used when the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, topCommand, roastCommand, serveCommand, snapshotCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

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

// loadConfig resolves the effective configuration: the runner's config if one
// was injected, else the file at path, else embedded defaults.
func (r *Runner) loadConfig(path string) *shared.Config {
	if r.config != nil {
		return r.config
	}

	if _, err := os.Stat(path); err == nil {
		if config, err := shared.LoadConfig(path); err == nil {
			return config
		}
		r.logger.Warn("failed to load config, using defaults", "path", path)
	}

	return shared.DefaultConfig()
}
