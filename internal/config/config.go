// Package config loads imagemeta CLI settings from flags, environment,
// .env files and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. IMAGEMETA_BACKEND.
const EnvPrefix = "IMAGEMETA"

// Setting keys.
const (
	KeyBackend      = "backend"
	KeyExiftoolPath = "exiftool.path"
	KeyLogLevel     = "log.level"
	KeyLogFormat    = "log.format"
	KeyOutput       = "output"
)

// Config holds the resolved settings.
type Config struct {
	Backend      string
	ExiftoolPath string
	LogLevel     string
	LogFormat    string
	Output       string

	// ConfigFile is the config file actually read, if any.
	ConfigFile string
}

// Loader resolves settings in order of precedence:
//  1. Bound command-line flags
//  2. Environment variables (IMAGEMETA_*)
//  3. .env and .env.local files
//  4. Config file (--config, or .imagemeta.yaml in $HOME or the working directory)
//  5. Defaults
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader with defaults applied.
func NewLoader() *Loader {
	v := viper.New()
	v.SetDefault(KeyBackend, "exiftool")
	v.SetDefault(KeyExiftoolPath, "")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "auto")
	v.SetDefault(KeyOutput, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// BindFlag binds a flag so that an explicitly set flag overrides every other source.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("bind %s: nil flag", key)
	}
	return l.v.BindPFlag(key, flag)
}

// Load reads .env files and the config file, then returns the merged settings.
// A missing default config file is not an error; a missing explicit one is.
func (l *Loader) Load(configFile string) (*Config, error) {
	for _, f := range []string{".env", ".env.local"} {
		_ = godotenv.Load(f)
	}

	if configFile != "" {
		l.v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			l.v.AddConfigPath(home)
		}
		l.v.AddConfigPath(".")
		l.v.SetConfigType("yaml")
		l.v.SetConfigName(".imagemeta")
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return &Config{
		Backend:      l.v.GetString(KeyBackend),
		ExiftoolPath: l.v.GetString(KeyExiftoolPath),
		LogLevel:     l.v.GetString(KeyLogLevel),
		LogFormat:    l.v.GetString(KeyLogFormat),
		Output:       l.v.GetString(KeyOutput),
		ConfigFile:   l.v.ConfigFileUsed(),
	}, nil
}
