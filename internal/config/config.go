// Package config resolves fecho settings from the config file, FECHO_
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/connorhough/fecho/internal/fecho"
	"github.com/connorhough/fecho/internal/logging"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Configuration keys. Environment variables use the FECHO_ prefix, e.g. FECHO_COUNT.
const (
	KeyCount     = "count"
	KeyTop       = "top"
	KeySeparator = "separator"
	KeyLogLevel  = "log_level"

	envPrefix = "FECHO"
	appName   = "fecho"
)

// New returns a viper instance with fecho's defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyCount, 1)
	v.SetDefault(KeyTop, 0)
	v.SetDefault(KeyLogLevel, logging.DefaultLevel)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

// Load reads the config file from fs into v. An explicit cfgFile must exist;
// when it is empty the standard locations are searched and a missing file is fine.
func Load(v *viper.Viper, fs afero.Fs, cfgFile string) error {
	v.SetFs(fs)
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			v.AddConfigPath(filepath.Join(xdgConfigHome, appName))
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get user home directory: %w", err)
			}
			v.AddConfigPath(filepath.Join(home, ".config", appName))
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// DefaultConfigPath returns where --init-config writes the template.
func DefaultConfigPath() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, appName, "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName, "config.yaml"), nil
}

// Settings holds the resolved run defaults.
type Settings struct {
	Count     int
	Top       int
	Separator fecho.Separator
	LogLevel  string
}

// Resolve reads settings from v. A separator set in the config file or
// environment is always explicit text, even when empty. Numeric settings that
// do not parse are reported rather than read as zero.
func Resolve(v *viper.Viper) (*Settings, error) {
	count, err := intSetting(v, KeyCount)
	if err != nil {
		return nil, err
	}
	top, err := intSetting(v, KeyTop)
	if err != nil {
		return nil, err
	}

	s := &Settings{
		Count:     count,
		Top:       top,
		Separator: fecho.NoSeparator(),
		LogLevel:  v.GetString(KeyLogLevel),
	}
	if v.IsSet(KeySeparator) {
		s.Separator = fecho.TextSeparator(v.GetString(KeySeparator))
	}
	return s, nil
}

func intSetting(v *viper.Viper, key string) (int, error) {
	n, err := cast.ToIntE(v.Get(key))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", fecho.ErrInvalidConfig, key, err)
	}
	return n, nil
}

// Flags carries command-line overrides. A nil field means the flag was not given.
type Flags struct {
	Count     *int
	Top       *int
	Separator *fecho.Separator
	LogLevel  *string
}

// ApplyFlags applies flag overrides to the settings (called from the command layer).
func (s *Settings) ApplyFlags(f Flags) {
	if f.Count != nil {
		s.Count = *f.Count
	}
	if f.Top != nil {
		s.Top = *f.Top
	}
	if f.Separator != nil {
		s.Separator = *f.Separator
	}
	if f.LogLevel != nil {
		s.LogLevel = *f.LogLevel
	}
}

// RunConfig combines the settings with the positional inputs of a run.
func (s *Settings) RunConfig(inputs []string, files, continuous bool) fecho.RunConfig {
	return fecho.RunConfig{
		Inputs:     inputs,
		Files:      files,
		Count:      s.Count,
		Top:        s.Top,
		Separator:  s.Separator,
		Continuous: continuous,
	}
}
