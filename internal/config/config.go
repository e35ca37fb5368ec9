package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds everything the migration run needs. Values are resolved
// in the usual order: flags over environment (SLACKCORD_*) over the
// config file over defaults.
type Config struct {
	Token      string `mapstructure:"token"`
	FilesDir   string `mapstructure:"files_dir"`
	UsersFile  string `mapstructure:"users_file"`
	Locale     string `mapstructure:"locale"`
	DryRun     bool   `mapstructure:"dry_run"`
	Transcript string `mapstructure:"transcript"`
	LogLevel   string `mapstructure:"log_level"`
	LogDir     string `mapstructure:"log_dir"`
}

// Dir returns the application's config/state directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".slackcord"), nil
}

func newViper(dir string) *viper.Viper {
	v := viper.New()
	v.SetDefault("files_dir", "Files")
	v.SetDefault("locale", "en-US")
	v.SetDefault("transcript", "transcript.txt")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_dir", filepath.Join(dir, "logs"))

	v.SetEnvPrefix("SLACKCORD")
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	return v
}

// Load reads the configuration, binding the given command flags so that
// explicitly set flags win. A missing config file is not an error.
func Load(flags *pflag.FlagSet) (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}

	v := newViper(dir)
	if flags != nil {
		// Flag names are kebab-case; config keys are snake_case.
		bindings := map[string]string{
			"token":      "token",
			"files_dir":  "files-folder",
			"users_file": "users-file",
			"locale":     "locale",
			"dry_run":    "dry-run",
			"transcript": "transcript",
			"log_level":  "log-level",
		}
		for key, name := range bindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveToken persists the bot token to the config file so later runs can
// connect without prompting again.
func SaveToken(token string) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	v := newViper(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config file: %w", err)
		}
	}
	v.Set("token", token)

	if err := v.WriteConfigAs(filepath.Join(dir, "config.yaml")); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
