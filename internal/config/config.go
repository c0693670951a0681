package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of environment variables that override config,
// e.g. BENKYOU_PROGRESS_DIR.
const EnvPrefix = "BENKYOU_"

// Study modes: which side of a card is shown as the question.
const (
	ModeEngToJap = "eng_to_jap"
	ModeJapToEng = "jap_to_eng"
	ModeMixed    = "mixed"
)

// Config holds the settings for a benkyou run.
type Config struct {
	DB          string   `koanf:"db" validate:"required_if=Driver sqlite"`
	Driver      string   `koanf:"driver" validate:"oneof=sqlite json"`
	ProgressDir string   `koanf:"progress-dir" validate:"required_if=Driver json"`
	ReposDir    string   `koanf:"repos-dir" validate:"required"`
	Sources     []string `koanf:"sources" validate:"dive,required"`
	Mode        string   `koanf:"mode" validate:"oneof=eng_to_jap jap_to_eng mixed"`
	LogLevel    string   `koanf:"log-level" validate:"oneof=debug info warn error"`
}

// RegisterFlags declares every config key as a flag on fs. The flag
// defaults are the config defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to a YAML config file")
	fs.String("db", "benkyou.db", "Path to the SQLite database file")
	fs.String("driver", "sqlite", "Progress storage backend: sqlite or json")
	fs.String("progress-dir", "progress_files", "Directory for JSON progress files")
	fs.String("repos-dir", "repos", "Directory git deck sources are checked out in")
	fs.StringSlice("sources", []string{"."}, "Deck sources: local directories or git URLs")
	fs.String("mode", ModeMixed, "Study mode: eng_to_jap, jap_to_eng or mixed")
	fs.String("log-level", "info", "Log level: debug, info, warn or error")
}

// Load merges the config file, BENKYOU_* environment variables and flags.
// Explicitly set flags win over the environment, which wins over the file.
// Flag defaults fill whatever is left.
func Load(fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path, _ := fs.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps BENKYOU_PROGRESS_DIR to progress-dir.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", "-")
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Logger builds the process logger at the configured level.
func (c *Config) Logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
