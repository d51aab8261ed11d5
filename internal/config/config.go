// Package config resolves nativelib settings from flags, environment
// variables, a config file and built-in defaults, in that order of priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bagtoad/nativelib/internal/loader"
	"github.com/bagtoad/nativelib/internal/platform"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Keys understood in the config file. Environment variables use the
// NATIVELIB_ prefix with dashes replaced by underscores.
const (
	KeyName      = "name"
	KeyVersion   = "version"
	KeyOutputDir = "output-dir"
	KeyPlatforms = "platforms"
	KeyLogLevel  = "log-level"
)

// DefaultLibraryName is the library shipped in the bundle.
const DefaultLibraryName = "sqlsmith"

const envPrefix = "NATIVELIB"

// Config is the resolved configuration.
type Config struct {
	LibraryName string
	Version     string
	OutputDir   string
	Supported   platform.Set
	LogLevel    zapcore.Level
	File        string // config file used, empty if none
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyName, DefaultLibraryName)
	v.SetDefault(KeyVersion, loader.DefaultVersion)
	v.SetDefault(KeyOutputDir, "")
	v.SetDefault(KeyPlatforms, defaultPlatforms())
	v.SetDefault(KeyLogLevel, "warn")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func defaultPlatforms() []string {
	var out []string
	for _, p := range platform.DefaultSupported.Sorted() {
		out = append(out, p.String())
	}
	return out
}

// DefaultPath returns ~/.nativelib/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".nativelib", "config.yaml"), nil
}

// Load reads the config file into v and resolves the final Config. An
// explicit file must exist; the default file is optional.
func Load(v *viper.Viper, file string) (*Config, error) {
	explicit := file != ""
	if !explicit {
		if path, err := DefaultPath(); err == nil {
			file = path
		}
	}

	var used string
	if file != "" {
		v.SetConfigFile(file)
		err := v.ReadInConfig()
		switch {
		case err == nil:
			used = v.ConfigFileUsed()
		case explicit || !isNotFound(err):
			return nil, fmt.Errorf("cannot read config file %s: %w", file, err)
		}
	}

	cfg, err := resolve(v)
	if err != nil {
		return nil, err
	}
	cfg.File = used
	return cfg, nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

func resolve(v *viper.Viper) (*Config, error) {
	name := strings.TrimSpace(v.GetString(KeyName))
	if err := loader.ValidateName(name); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyName, err)
	}

	supported, err := platform.ParseSet(v.GetStringSlice(KeyPlatforms))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyPlatforms, err)
	}

	level, err := zapcore.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyLogLevel, err)
	}

	return &Config{
		LibraryName: name,
		Version:     v.GetString(KeyVersion),
		OutputDir:   v.GetString(KeyOutputDir),
		Supported:   supported,
		LogLevel:    level,
	}, nil
}

// LoaderOptions turns the config into loader options.
func (c *Config) LoaderOptions() []loader.Option {
	return []loader.Option{
		loader.WithVersion(c.Version),
		loader.WithSupported(c.Supported),
		loader.WithOutputDir(c.OutputDir),
	}
}
