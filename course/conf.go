package course

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/df-mc/gauntlet/course/coursedb"
	"github.com/df-mc/gauntlet/course/level"
	"github.com/df-mc/gauntlet/course/level/block"
	"github.com/klauspost/compress/zstd"
	"github.com/pelletier/go-toml"
)

// SeedMode controls how the seed of a level is chosen when a Course is reset.
type SeedMode string

const (
	// SeedDay seeds every level with the start of the UTC day, so that every
	// reset on the same day produces the same level.
	SeedDay SeedMode = "day"
	// SeedWeek seeds every level with the start of the ISO week.
	SeedWeek SeedMode = "week"
	// SeedFixed always uses Config.Seed.
	SeedFixed SeedMode = "fixed"
	// SeedPhrase uses the hash of Config.Phrase.
	SeedPhrase SeedMode = "phrase"
)

// ParseSeedMode parses the name of a SeedMode. An empty name is SeedDay.
func ParseSeedMode(name string) (SeedMode, error) {
	switch m := SeedMode(strings.ToLower(strings.TrimSpace(name))); m {
	case "":
		return SeedDay, nil
	case SeedDay, SeedWeek, SeedFixed, SeedPhrase:
		return m, nil
	}
	return "", fmt.Errorf("unknown seed mode %q", name)
}

// Config contains options for creating a Course.
type Config struct {
	// Log is the Logger to use for logging information. If nil, Log is set to
	// slog.Default().
	Log *slog.Logger
	// Registry holds the Operations levels are built from. If nil,
	// block.DefaultRegistry() is used.
	Registry *level.Registry
	// Blocks is the number of blocks of every level. If 0 or lower,
	// level.DefaultBlocks is used.
	Blocks int
	// SeedMode controls how the seed of a level is chosen. If empty, SeedDay
	// is used.
	SeedMode SeedMode
	// Seed is the seed used with SeedFixed.
	Seed int64
	// Phrase is the seed phrase used with SeedPhrase.
	Phrase string
	// Provider stores a Record of every generated level. If nil, records are
	// not stored.
	Provider coursedb.Provider
	// Handler is notified of every generated block in addition to the
	// handlers of the Course itself. If nil, level.NopHandler is used.
	Handler level.Handler
}

// UserConfig is the user configuration of a course. It may be serialised to
// TOML and converted to a Config by calling UserConfig.Config(). Every field
// may be overridden with the GAUNTLET_* environment variable in its tag.
type UserConfig struct {
	Level struct {
		// Blocks is the number of blocks of every level.
		Blocks int `env:"GAUNTLET_LEVEL_BLOCKS"`
		// SeedMode is one of "day", "week", "fixed" and "phrase".
		SeedMode string `env:"GAUNTLET_LEVEL_SEED_MODE"`
		// Seed is the seed used by the "fixed" seed mode.
		Seed int64 `env:"GAUNTLET_LEVEL_SEED"`
		// Phrase is hashed into the seed by the "phrase" seed mode.
		Phrase string `env:"GAUNTLET_LEVEL_PHRASE"`
	}
	Storage struct {
		// SaveData controls whether a record of every generated level is
		// stored. If true, the LevelDB course database is used.
		SaveData bool `env:"GAUNTLET_STORAGE_SAVE_DATA"`
		// Folder is the folder the course database resides in.
		Folder string `env:"GAUNTLET_STORAGE_FOLDER"`
		// Compression is the zstd level of stored records: "fastest",
		// "default", "better" or "best".
		Compression string `env:"GAUNTLET_STORAGE_COMPRESSION"`
	}
	Console struct {
		// Enabled controls whether commands are read from standard input.
		Enabled bool `env:"GAUNTLET_CONSOLE_ENABLED"`
	}
	Log struct {
		// Level is the minimum level logged: "debug", "info", "warn" or
		// "error".
		Level string `env:"GAUNTLET_LOG_LEVEL"`
		// Format is either "text" or "json".
		Format string `env:"GAUNTLET_LOG_FORMAT"`
	}
}

// DefaultConfig returns a configuration with the default values filled out.
func DefaultConfig() UserConfig {
	c := UserConfig{}
	c.Level.Blocks = level.DefaultBlocks
	c.Level.SeedMode = string(SeedDay)
	c.Storage.SaveData = true
	c.Storage.Folder = "courses"
	c.Storage.Compression = "default"
	c.Console.Enabled = true
	c.Log.Level = "info"
	c.Log.Format = "text"
	return c
}

// LoadConfig reads the UserConfig stored at path. If the file does not exist
// yet, it is created holding DefaultConfig(). Environment overrides are
// applied after the file is read.
func LoadConfig(path string) (UserConfig, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := writeConfig(path, c); err != nil {
			return c, err
		}
	case err != nil:
		return c, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("decode config: %w", err)
		}
	}
	return c, c.ApplyEnv()
}

func writeConfig(path string, c UserConfig) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ApplyEnv overrides the fields of uc with the GAUNTLET_* environment
// variables that are set.
func (uc *UserConfig) ApplyEnv() error {
	if err := env.Parse(uc); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Logger returns a Logger writing to w with the level and format of uc.
func (uc UserConfig) Logger(w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if s := strings.TrimSpace(uc.Log.Level); s != "" {
		if err := lvl.UnmarshalText([]byte(s)); err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(strings.TrimSpace(uc.Log.Format)) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("unknown log format %q", uc.Log.Format)
}

// Config converts a UserConfig to a Config, so that it may be used for creating
// a Course. An error is returned if the seed mode is unknown or the course
// database could not be opened.
func (uc UserConfig) Config(log *slog.Logger) (Config, error) {
	mode, err := ParseSeedMode(uc.Level.SeedMode)
	if err != nil {
		return Config{}, err
	}
	conf := Config{
		Log:      log,
		Registry: block.DefaultRegistry(),
		Blocks:   uc.Level.Blocks,
		SeedMode: mode,
		Seed:     uc.Level.Seed,
		Phrase:   uc.Level.Phrase,
	}
	if mode == SeedPhrase && strings.TrimSpace(conf.Phrase) == "" && log != nil {
		log.Warn("Seed mode is phrase but no phrase is set, using the empty phrase.")
	}
	if uc.Storage.SaveData {
		dbConf := coursedb.Config{Log: log}
		if s := strings.TrimSpace(uc.Storage.Compression); s != "" {
			ok, lvl := zstd.EncoderLevelFromString(s)
			if !ok {
				return conf, fmt.Errorf("unknown compression level %q", s)
			}
			dbConf.Compression = lvl
		}
		conf.Provider, err = dbConf.Open(uc.Storage.Folder)
		if err != nil {
			return conf, fmt.Errorf("create course provider: %w", err)
		}
	}
	return conf, nil
}
