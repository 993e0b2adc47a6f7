package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

//go:embed config.example.toml
var exampleConf []byte

// Storage backends for the persisted player state.
const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
	StorageMemory = "memory"
)

// Audio outputs.
const (
	OutputSpeaker = "speaker"
	OutputDiscard = "discard"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Player   PlayerConfig   `toml:"player"`
	Audio    AudioConfig    `toml:"audio"`
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
}

// PlayerConfig contains mini-player behavior and persistence settings.
type PlayerConfig struct {
	Storage          string  `toml:"storage"`
	StateKey         string  `toml:"state_key"`
	StateFile        string  `toml:"state_file"`
	PlaceholderTitle string  `toml:"placeholder_title"`
	SeekStep         float64 `toml:"seek_step"`
	TickMS           int     `toml:"tick_ms"`
	MaxDownloadMB    int     `toml:"max_download_mb"`
	DownloadTimeoutS int     `toml:"download_timeout_s"`
}

// AudioConfig contains playback output settings.
type AudioConfig struct {
	Output     string `toml:"output"`
	SampleRate int    `toml:"sample_rate"`
	BufferMS   int    `toml:"buffer_ms"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks enumerated and numeric settings.
func (c *Config) Validate() error {
	switch c.Player.Storage {
	case StorageSQLite, StorageFile, StorageMemory:
	default:
		return fmt.Errorf("%w: unknown player.storage %q", ErrInvalidConfig, c.Player.Storage)
	}

	switch c.Audio.Output {
	case OutputSpeaker, OutputDiscard:
	default:
		return fmt.Errorf("%w: unknown audio.output %q", ErrInvalidConfig, c.Audio.Output)
	}

	if c.Player.StateKey == "" {
		return fmt.Errorf("%w: player.state_key is empty", ErrInvalidConfig)
	}
	if c.Player.SeekStep <= 0 || c.Player.SeekStep > 100 {
		return fmt.Errorf("%w: player.seek_step must be in (0, 100]", ErrInvalidConfig)
	}
	if c.Player.TickMS <= 0 {
		return fmt.Errorf("%w: player.tick_ms must be positive", ErrInvalidConfig)
	}
	if c.Player.DownloadTimeoutS <= 0 {
		return fmt.Errorf("%w: player.download_timeout_s must be positive", ErrInvalidConfig)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: audio.sample_rate must be positive", ErrInvalidConfig)
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

// Tick returns the time-progress interval.
func (c PlayerConfig) Tick() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// MaxDownloadBytes returns the cap on remote sources in bytes.
func (c PlayerConfig) MaxDownloadBytes() int64 {
	return int64(c.MaxDownloadMB) << 20
}

// DownloadTimeout bounds a single remote source fetch.
func (c PlayerConfig) DownloadTimeout() time.Duration {
	return time.Duration(c.DownloadTimeoutS) * time.Second
}

// Buffer returns the output buffer length.
func (c AudioConfig) Buffer() time.Duration {
	return time.Duration(c.BufferMS) * time.Millisecond
}
