package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	// OutputJSON renders the located configuration as indented JSON.
	OutputJSON = "json"
	// OutputYAML renders the located configuration as YAML.
	OutputYAML = "yaml"

	defaultOutput   = OutputJSON
	defaultLogLevel = "info"
	defaultHomeDir  = ".bitcore"

	envPrefix = "BITCORE_NODE_DIVI_"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML settings > Environment variables > Defaults
type Config struct {
	StartDir     string `yaml:"start_dir"`
	Output       string `yaml:"output"`
	LogLevel     string `yaml:"log_level"`
	HomeFallback bool   `yaml:"home_fallback"`
	HomeDir      string `yaml:"home_dir"`
}

// yamlConfig represents the YAML settings file structure.
type yamlConfig struct {
	StartDir     string `yaml:"start_dir"`
	Output       string `yaml:"output"`
	LogLevel     string `yaml:"log_level"`
	HomeFallback *bool  `yaml:"home_fallback"`
	HomeDir      string `yaml:"home_dir"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	SettingsFile string
	StartDir     *string
	Output       *string
	LogLevel     *string
	HomeFallback *bool
	HomeDir      *string
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML settings > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg, err := defaultConfig()
	if err != nil {
		return Config{}, err
	}

	applyEnvConfig(&cfg)

	if overrides != nil && overrides.SettingsFile != "" {
		yamlCfg, err := loadFromFile(overrides.SettingsFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML settings: %w", err)
		}
		applyYAMLConfig(&cfg, yamlCfg)
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := normalizeConfig(&cfg); err != nil {
		return Config{}, err
	}
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config rooted at the process working directory.
func defaultConfig() (Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return Config{}, fmt.Errorf("resolve working directory: %w", err)
	}

	cfg := Config{
		StartDir: wd,
		Output:   defaultOutput,
		LogLevel: defaultLogLevel,
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HomeDir = filepath.Join(home, defaultHomeDir)
	}
	return cfg, nil
}

// loadFromFile loads settings from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML settings to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) {
	if yamlCfg.StartDir != "" {
		cfg.StartDir = yamlCfg.StartDir
	}
	if yamlCfg.Output != "" {
		cfg.Output = yamlCfg.Output
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.HomeFallback != nil {
		cfg.HomeFallback = *yamlCfg.HomeFallback
	}
	if yamlCfg.HomeDir != "" {
		cfg.HomeDir = yamlCfg.HomeDir
	}
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) {
	if output := strings.TrimSpace(os.Getenv(envPrefix + "OUTPUT")); output != "" {
		cfg.Output = output
	}

	if level := strings.TrimSpace(os.Getenv(envPrefix + "LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	if home := strings.TrimSpace(os.Getenv(envPrefix + "HOME")); home != "" {
		cfg.HomeDir = home
	}

	if fallback := strings.TrimSpace(os.Getenv(envPrefix + "HOME_FALLBACK")); fallback != "" {
		if value, err := strconv.ParseBool(fallback); err == nil {
			cfg.HomeFallback = value
		}
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.StartDir != nil && *overrides.StartDir != "" {
		cfg.StartDir = *overrides.StartDir
	}
	if overrides.Output != nil && *overrides.Output != "" {
		cfg.Output = *overrides.Output
	}
	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}
	if overrides.HomeFallback != nil {
		cfg.HomeFallback = *overrides.HomeFallback
	}
	if overrides.HomeDir != nil && *overrides.HomeDir != "" {
		cfg.HomeDir = *overrides.HomeDir
	}
}

// normalizeConfig lowercases enumerations and makes directories absolute.
func normalizeConfig(cfg *Config) error {
	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	start, err := filepath.Abs(cfg.StartDir)
	if err != nil {
		return fmt.Errorf("resolve start directory: %w", err)
	}
	cfg.StartDir = start

	if cfg.HomeDir != "" {
		home, err := filepath.Abs(cfg.HomeDir)
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.HomeDir = home
	}
	return nil
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.Output != OutputJSON && cfg.Output != OutputYAML {
		return fmt.Errorf("output must be %q or %q, got %q", OutputJSON, OutputYAML, cfg.Output)
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if cfg.HomeFallback && cfg.HomeDir == "" {
		return fmt.Errorf("home fallback enabled but no home directory could be resolved")
	}
	return nil
}
