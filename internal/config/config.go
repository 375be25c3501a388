package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the customfields bootstrap configuration.
type Config struct {
	Database     DatabaseConfig     `yaml:"database"`
	Storage      StorageConfig      `yaml:"storage"`
	Registration RegistrationConfig `yaml:"registration"`
	Logging      LoggingConfig      `yaml:"logging"`
	Fields       []map[string]any   `yaml:"fields"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis, valkey, memory (default: redis)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"` // prepended to the definitions hash key
}

// RegistrationConfig holds startup registration settings.
type RegistrationConfig struct {
	OnError    string `yaml:"on_error"`   // abort (default) | skip
	Collisions string `yaml:"collisions"` // override (default) | reject
	TimeoutSec int    `yaml:"timeout_sec"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML, applies defaults and validates the result.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = "redis"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Registration.OnError == "" {
		c.Registration.OnError = "abort"
	}
	if c.Registration.Collisions == "" {
		c.Registration.Collisions = "override"
	}
	if c.Registration.TimeoutSec <= 0 {
		c.Registration.TimeoutSec = 30
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "redis", "valkey":
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required")
		}
	case "memory":
		// ok
	default:
		return fmt.Errorf(
			"database.driver must be \"redis\", \"valkey\" or \"memory\", got %q",
			c.Database.Driver,
		)
	}
	if c.Database.DB < 0 {
		return fmt.Errorf("database.db must not be negative, got %d", c.Database.DB)
	}
	switch c.Registration.OnError {
	case "abort", "skip":
		// ok
	default:
		return fmt.Errorf(
			"registration.on_error must be \"abort\" or \"skip\", got %q",
			c.Registration.OnError,
		)
	}
	switch c.Registration.Collisions {
	case "override", "reject":
		// ok
	default:
		return fmt.Errorf(
			"registration.collisions must be \"override\" or \"reject\", got %q",
			c.Registration.Collisions,
		)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
