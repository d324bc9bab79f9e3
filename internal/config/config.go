// Package config loads server settings from, in order of precedence:
// command-line flags, BRAINGYM_* environment variables and an optional
// YAML config file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds the server-level settings. User-facing preferences (max
// study minutes, jokes, voice) live in the profile, in the store.
type Config struct {
	Addr     string `koanf:"addr" validate:"required,hostname_port"`
	DBPath   string `koanf:"db" validate:"required"`
	ReposDir string `koanf:"repos_dir" validate:"required"`
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`
}

// Flags registers the command-line flags whose defaults double as the
// configuration defaults.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("braingym", pflag.ContinueOnError)
	fs.String("config", "", "Path to an optional YAML config file")
	fs.String("addr", "localhost:8594", "HTTP listen address")
	fs.String("db", "braingym.db", "Path to the sqlite database file")
	fs.String("repos-dir", "repos", "Directory for git deck source checkouts")
	fs.String("log-level", "info", "Log level: debug, info, warn or error")
	fs.String("add-source", "", "Register a deck source (path or git URL) and exit")
	fs.Bool("sync", false, "Sync all deck sources and exit")
	return fs
}

// Load merges the config file (if any), environment and flags into a
// validated Config.
func Load(fs *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if path, _ := fs.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// BRAINGYM_LOG_LEVEL -> log_level
	envProvider := env.Provider(".", env.Opt{
		Prefix: "BRAINGYM_",
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, "BRAINGYM_")), value
		},
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load flags: %w", err)
	}

	cfg := Config{
		Addr:     k.String("addr"),
		DBPath:   k.String("db"),
		ReposDir: firstNonEmpty(k.String("repos_dir"), k.String("repos-dir")),
		LogLevel: firstNonEmpty(k.String("log_level"), k.String("log-level")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// FileExists reports whether a config file candidate is present, so main
// can pick up braingym.yml without requiring --config.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// firstNonEmpty papers over the flag-name/key-name difference: flags use
// dashes, file and env keys use underscores.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
