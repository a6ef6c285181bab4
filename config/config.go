// Package config resolves ThreatConnect credentials from, in increasing
// precedence: a TOML file in the user config directory, a .env file, and
// TC_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	toml "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	threatconnect "github.com/tc-tui/threatconnect-go"
)

const (
	// AppName names the directory under the user config dir.
	AppName = "tc-tui"
	// FileName is the config file inside that directory.
	FileName = "config.toml"
	// EnvPrefix is the prefix of the environment variables read.
	EnvPrefix = "TC_"
	// DotEnvFile is loaded from the working directory when present.
	DotEnvFile = ".env"
)

// Config holds the three values needed to talk to an instance. Keys are the
// same in config.toml and, uppercased, in the environment.
type Config struct {
	AccessID  string `koanf:"tc_access_id"`
	SecretKey string `koanf:"tc_secret_key"`
	Instance  string `koanf:"tc_instance"`
}

type options struct {
	path   string
	dotEnv string
}

// Option configures Load.
type Option func(*options)

// WithPath reads the TOML file at path instead of the default location.
// An empty path skips the file.
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithDotEnv reads the given dotenv file instead of ./.env. An empty path
// skips the step.
func WithDotEnv(path string) Option {
	return func(o *options) {
		o.dotEnv = path
	}
}

// DefaultPath returns <user config dir>/tc-tui/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, FileName), nil
}

// Load resolves the configuration. Missing files are not an error; a file
// that exists but cannot be parsed is. Load does not validate, so a partial
// result can still be inspected; call Validate before use.
func Load(opts ...Option) (*Config, error) {
	o := options{dotEnv: DotEnvFile}
	if p, err := DefaultPath(); err == nil {
		o.path = p
	}
	for _, opt := range opts {
		opt(&o)
	}

	k := koanf.New(".")

	if o.path != "" {
		if _, err := os.Stat(o.path); err == nil {
			if err := k.Load(file.Provider(o.path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("config: failed to parse %s: %w", o.path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: failed to read %s: %w", o.path, err)
		}
	}

	// .env only populates variables that are not already set, so real
	// environment variables keep precedence.
	if o.dotEnv != "" {
		if err := godotenv.Load(o.dotEnv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: failed to load %s: %w", o.dotEnv, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("config: failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal: %w", err)
	}
	return &cfg, nil
}

// Validate returns an error naming every missing field.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.AccessID, validation.Required.Error(missing("TC_ACCESS_ID"))),
		validation.Field(&c.SecretKey, validation.Required.Error(missing("TC_SECRET_KEY"))),
		validation.Field(&c.Instance, validation.Required.Error(missing("TC_INSTANCE"))),
	)
}

// Identity converts the configuration for threatconnect.NewClient.
func (c *Config) Identity() threatconnect.Identity {
	return threatconnect.Identity{
		AccessID:  c.AccessID,
		SecretKey: c.SecretKey,
		Instance:  c.Instance,
	}
}

func missing(key string) string {
	return key + " is missing. Please set it in " + FileName + " or environment variables."
}
