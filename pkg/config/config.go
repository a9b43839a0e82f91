// Package config loads postman2md settings from the environment, an optional
// .env file and an optional config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by postman2md.
const EnvPrefix = "POSTMAN2MD"

// ConfigFileName is the base name of the config file looked up in the working directory.
const ConfigFileName = ".postman2md"

// Config holds the settings of a conversion run.
type Config struct {
	OutputDir     string `mapstructure:"output_dir"`
	Extension     string `mapstructure:"extension"`
	WriteCombined bool   `mapstructure:"write_combined"`
	CombinedName  string `mapstructure:"combined_name"`
	LogLevel      string `mapstructure:"log_level"`
	LogFormat     string `mapstructure:"log_format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		OutputDir:     "generated",
		Extension:     ".md",
		WriteCombined: false,
		CombinedName:  "full.md",
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// LoadDotEnv loads a .env file from the working directory if there is one.
// A missing file is fine; a malformed one is reported as an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	return nil
}

// Load reads the settings. The config file is taken from POSTMAN2MD_CONFIG
// when set, otherwise .postman2md.{yaml,json,toml} is looked up in the working
// directory. Environment variables override file values.
func Load() (*Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("extension", defaults.Extension)
	v.SetDefault("write_combined", defaults.WriteCombined)
	v.SetDefault("combined_name", defaults.CombinedName)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path := os.Getenv(EnvPrefix + "_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(ConfigFileName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail late in the run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("extension %q must start with a dot", c.Extension)
	}
	if c.CombinedName == "" || strings.ContainsAny(c.CombinedName, `/\`) {
		return fmt.Errorf("combined_name %q must be a plain file name", c.CombinedName)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format %q must be text or json", c.LogFormat)
	}
	return nil
}
