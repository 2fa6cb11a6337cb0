// Package config resolves relplan settings from defaults, an optional
// .relplan.yaml file, RELPLAN_* environment variables and command flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	KeyDB          = "db"
	KeyLogUseCases = "log_use_cases"
	KeyOutput      = "output"
	KeyConfigFile  = "config"

	OutputTable = "table"
	OutputJSON  = "json"

	envPrefix = "RELPLAN"
	fileName  = ".relplan"
)

// Config holds the resolved settings.
type Config struct {
	DBPath      string `mapstructure:"db"`
	LogUseCases bool   `mapstructure:"log_use_cases"`
	Output      string `mapstructure:"output"`
	// File is the config file that was read, or "" when none was found.
	File string `mapstructure:"-"`
}

// JSON reports whether reports should be printed as JSON.
func (c Config) JSON() bool {
	return c.Output == OutputJSON
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() Config {
	return Config{
		DBPath: defaultDBPath(),
		Output: OutputTable,
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".relplan", "relplan.db")
	}
	return filepath.Join(home, ".relplan", "relplan.db")
}

// New returns a viper instance with relplan's defaults, env binding and
// config file search path. Flags are bound to it by the caller.
func New() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault(KeyDB, def.DBPath)
	v.SetDefault(KeyLogUseCases, def.LogUseCases)
	v.SetDefault(KeyOutput, def.Output)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file, if any, and resolves the final settings.
// A missing config file is not an error.
func Load(v *viper.Viper) (Config, error) {
	if file := v.GetString(KeyConfigFile); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(fileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
	if cfg.DBPath = strings.TrimSpace(cfg.DBPath); cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}

	switch cfg.Output {
	case OutputTable, OutputJSON:
	default:
		return Config{}, fmt.Errorf("output must be %q or %q, got %q", OutputTable, OutputJSON, cfg.Output)
	}
	return cfg, nil
}
