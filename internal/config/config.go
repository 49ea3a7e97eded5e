// Package config loads fnbench settings from config file, environment, and
// defaults, in that order of increasing precedence for the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds every tunable the CLI reads
type Config struct {
	// Benchmark defaults
	Number    int    `mapstructure:"number"`
	Repeat    int    `mapstructure:"repeat"`
	Precision int    `mapstructure:"precision"`
	Unit      string `mapstructure:"unit"`

	// Conformance suite
	SuiteTimeout float64 `mapstructure:"suite_timeout"`

	// Output
	ResultsDir string `mapstructure:"results_dir"`
	LogLevel   string `mapstructure:"log_level"`

	// HTTP exposition
	ListenAddr string `mapstructure:"listen_addr"`
}

// Load reads configuration. cfgFile overrides the default search path
// ($HOME/.fnbench/config.yaml); a missing config file is not an error,
// FNBENCH_* environment variables and defaults still apply.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("number", 0) // 0 means autorange
	v.SetDefault("repeat", 5)
	v.SetDefault("precision", 1)
	v.SetDefault("unit", "")
	v.SetDefault("suite_timeout", 10.0)
	v.SetDefault("results_dir", "results")
	v.SetDefault("log_level", "info")
	v.SetDefault("listen_addr", ":9127")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".fnbench"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("FNBENCH")
	v.AutomaticEnv()
	v.BindEnv("results_dir", "FNBENCH_RESULTS_DIR")
	v.BindEnv("listen_addr", "FNBENCH_LISTEN_ADDR")
	v.BindEnv("log_level", "FNBENCH_LOG_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("failed to read config %s: %w", cfgFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
