package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gp/internal/audio"
	"github.com/desertthunder/gp/internal/controls"
	"github.com/desertthunder/gp/internal/player"
	"github.com/desertthunder/gp/internal/repositories"
	"github.com/desertthunder/gp/internal/shared"
	"github.com/desertthunder/gp/internal/ui"
	"github.com/urfave/cli/v3"
)

// loopSize bounds callbacks queued between the audio goroutines and the player.
const loopSize = 64

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	progress   io.Writer
	audioOut   audio.Output
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	HTTPClient *http.Client // defaults to a client bounded by player.download_timeout_s
	Logger     *log.Logger
	Output     io.Writer
	Progress   io.Writer    // headless progress bar, defaults to os.Stderr
	AudioOut   audio.Output // overrides audio.output from the config
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
	if opts.Progress == nil {
		opts.Progress = os.Stderr
	}
	return &Runner{
		config:     opts.Config,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		progress:   opts.Progress,
		audioOut:   opts.AudioOut,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		playCommand, resumeCommand, stateCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig replaces the defaults with the --config file when it exists.
func (r *Runner) loadConfig(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	if _, err := os.Stat(path); err == nil {
		config, err := shared.LoadConfig(path)
		if err != nil {
			return ctx, err
		}
		r.config = config
		r.logger.Debug("loaded config", "path", path)
	}

	level, err := log.ParseLevel(r.config.Log.Level)
	if err != nil {
		return ctx, fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}
	shared.SetLogLevel(r.logger, level)
	return ctx, nil
}

// SetLogger swaps the logger, keeping the configured level.
func (r *Runner) SetLogger(l *log.Logger) {
	l.SetLevel(r.logger.GetLevel())
	r.logger = l
}

// openStore opens the configured persistence backend. The returned func releases it.
func (r *Runner) openStore() (player.Storage, func() error, error) {
	noop := func() error { return nil }

	switch r.config.Player.Storage {
	case shared.StorageMemory:
		return repositories.NewMemoryStore(), noop, nil
	case shared.StorageFile:
		return repositories.NewFileStore(r.config.Player.StateFile), noop, nil
	case shared.StorageSQLite:
		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", shared.ErrStorageUnavailable, err)
		}
		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

		if err := shared.RunMigrations(db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("%w: %v", shared.ErrStorageUnavailable, err)
		}
		return repositories.NewStateRepository(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown player.storage %q", shared.ErrInvalidConfig, r.config.Player.Storage)
	}
}

func (r *Runner) audioOutput() audio.Output {
	if r.audioOut != nil {
		return r.audioOut
	}
	if r.config.Audio.Output == shared.OutputDiscard {
		return audio.NewDiscard()
	}
	return audio.Speaker{}
}

// session is one wired player: storage, audio engine, controls and the loop they share.
type session struct {
	loop     *controls.Loop
	engine   *audio.Engine
	player   *player.MiniPlayer
	controls ui.Controls
	closers  []func() error
}

// client returns the injected HTTP client, or one bounded by the configured download timeout.
func (r *Runner) client() *http.Client {
	if r.httpClient != nil {
		return r.httpClient
	}
	return &http.Client{Timeout: r.config.Player.DownloadTimeout()}
}

// newSession wires a player, restoring the persisted track. Remote loads are cancelled with ctx.
func (r *Runner) newSession(ctx context.Context) (*session, error) {
	store, closeStore, err := r.openStore()
	if err != nil {
		return nil, err
	}

	loop := controls.NewLoop(loopSize)
	engine, err := audio.NewEngine(audio.EngineOpts{
		Output:     r.audioOutput(),
		Opener:     audio.Opener{Client: r.client(), MaxBytes: r.config.Player.MaxDownloadBytes()},
		Post:       loop.Post,
		Context:    ctx,
		SampleRate: r.config.Audio.SampleRate,
		Buffer:     r.config.Audio.Buffer(),
		Tick:       r.config.Player.Tick(),
		Logger:     r.logger,
	})
	if err != nil {
		closeStore()
		return nil, err
	}

	c := ui.NewControls()
	p, err := player.New(player.Options{
		Bindings:    c.Bindings(engine),
		Store:       store,
		StateKey:    r.config.Player.StateKey,
		Placeholder: r.config.Player.PlaceholderTitle,
		Logger:      r.logger,
	})
	if err != nil {
		engine.Close()
		closeStore()
		return nil, err
	}

	return &session{
		loop:     loop,
		engine:   engine,
		player:   p,
		controls: c,
		closers:  []func() error{closeLoop(loop), engine.Close, closeStore},
	}, nil
}

// closeLoop releases audio goroutines still posting once nothing drains the loop.
func closeLoop(loop *controls.Loop) func() error {
	return func() error {
		loop.Close()
		return nil
	}
}

func (s *session) close(logger *log.Logger) {
	for _, fn := range s.closers {
		if err := fn(); err != nil {
			logger.Warn("failed to release session resource", "error", err)
		}
	}
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
