package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"releasetrain/internal/domain"
	"releasetrain/internal/domain/types"
	"releasetrain/internal/tracker"
)

// ErrConfigValidation wraps config validation failures, as opposed to TOML
// syntax or filesystem errors.
var ErrConfigValidation = errors.New("config validation failed")

// TokenEnv overrides tracker.token when set.
const TokenEnv = "RELEASETRAIN_GITHUB_TOKEN"

// DefaultConfigPath is read when no --config flag is given.
const DefaultConfigPath = "releasetrain.toml"

// Tracker kinds.
const (
	TrackerGitHub = "github"
	TrackerFile   = "file"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Repository   domain.RepositoryRef `toml:"repository"`
	ReleaseTrain ReleaseTrainConfig   `toml:"release_train"`
	Tracker      TrackerConfig        `toml:"tracker"`
	Log          LogConfig            `toml:"log"`
}

// ReleaseTrainConfig is the schedule rule, e.g. week 2 day 2 for the 2nd
// Tuesday of each month.
type ReleaseTrainConfig struct {
	WeekOfMonth int `toml:"week_of_month"`
	DayOfWeek   int `toml:"day_of_week"`
}

// TrackerConfig selects where milestones are published.
type TrackerConfig struct {
	Kind  string `toml:"kind"`  // "github" or "file"
	URL   string `toml:"url"`   // API base URL for kind "github"
	Dir   string `toml:"dir"`   // data directory for kind "file"
	Token string `toml:"token"` // prefer RELEASETRAIN_GITHUB_TOKEN
}

type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the configuration used when no file exists:
// first Monday of the month, milestones kept in ~/.releasetrain.
func DefaultConfig() Config {
	return Config{
		ReleaseTrain: ReleaseTrainConfig{WeekOfMonth: 1, DayOfWeek: 1},
		Tracker: TrackerConfig{
			Kind: TrackerFile,
			URL:  tracker.DefaultBaseURL,
			Dir:  "~/.releasetrain",
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig reads and validates the TOML config at path.
func LoadConfig(path string) (Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return Config{}, fmt.Errorf("expand config path %s: %w", path, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// LoadConfigOrDefault is LoadConfig, except that a missing file yields the
// validated DefaultConfig.
func LoadConfigOrDefault(path string) (Config, error) {
	cfg, err := LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		return finish(DefaultConfig(), "defaults")
	}
	return cfg, err
}

// ParseConfig parses TOML data over DefaultConfig and validates the result.
// source is used in error messages.
func ParseConfig(data []byte, source string) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", source, err)
	}
	return finish(cfg, source)
}

// finish applies environment overrides, expands paths and validates.
func finish(cfg Config, source string) (Config, error) {
	if token := strings.TrimSpace(os.Getenv(TokenEnv)); token != "" {
		cfg.Tracker.Token = token
	}
	if cfg.Tracker.Dir != "" {
		dir, err := homedir.Expand(cfg.Tracker.Dir)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s: tracker.dir: %v", ErrConfigValidation, source, err)
		}
		cfg.Tracker.Dir = dir
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, nil
}

// Validate ensures the config is complete and consistent.
func (c Config) Validate() error {
	if _, err := c.WeekOfMonth(); err != nil {
		return fmt.Errorf("%w: release_train.week_of_month: %v", ErrConfigValidation, err)
	}
	if _, err := c.DayOfWeek(); err != nil {
		return fmt.Errorf("%w: release_train.day_of_week: %v", ErrConfigValidation, err)
	}
	switch c.Tracker.Kind {
	case TrackerGitHub:
		if c.Tracker.URL == "" {
			return fmt.Errorf("%w: tracker.url is required for kind %q", ErrConfigValidation, TrackerGitHub)
		}
	case TrackerFile:
		if c.Tracker.Dir == "" {
			return fmt.Errorf("%w: tracker.dir is required for kind %q", ErrConfigValidation, TrackerFile)
		}
	default:
		return fmt.Errorf("%w: tracker.kind must be %q or %q, got %q",
			ErrConfigValidation, TrackerGitHub, TrackerFile, c.Tracker.Kind)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrConfigValidation, err)
	}
	return nil
}

// RequireRepository fails unless repository.owner and repository.name are set.
func (c Config) RequireRepository() error {
	if !c.Repository.Valid() {
		return fmt.Errorf("%w: repository.owner and repository.name are required", ErrConfigValidation)
	}
	return nil
}

func (c Config) WeekOfMonth() (domain.WeekOfMonth, error) {
	return types.ParseWeekOfMonth(c.ReleaseTrain.WeekOfMonth)
}

func (c Config) DayOfWeek() (domain.DayOfWeek, error) {
	return types.ParseDayOfWeek(c.ReleaseTrain.DayOfWeek)
}

func (c Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.Log.Level))
	return level, err
}
