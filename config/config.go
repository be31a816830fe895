package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/pipekit/logger"
)

// envPrefix is the prefix for environment overrides, e.g.
// PIPEKIT_LOGGING_LEVEL or PIPEKIT_OTEL_ENDPOINT.
const envPrefix = "PIPEKIT"

// Settings is the process-level configuration for pipekit tools: logging
// plus optional OpenTelemetry export. Pipeline topology lives in
// Definition files, not here.
type Settings struct {
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
	Otel    OtelSettings  `yaml:"otel" mapstructure:"otel"`
}

// OtelSettings controls OTLP exporter setup.
type OtelSettings struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure bool   `yaml:"insecure" mapstructure:"insecure"`
}

// ApplyDefaults applies default values to the settings.
func (s *Settings) ApplyDefaults() {
	s.Logging.ApplyDefaults()
	if s.Otel.Endpoint == "" {
		s.Otel.Endpoint = "localhost:4318"
		s.Otel.Insecure = true
	}
}

// Validate validates the settings.
func (s *Settings) Validate() error {
	if err := s.Logging.Validate(); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	if s.Otel.Enabled && s.Otel.Endpoint == "" {
		return fmt.Errorf("settings: otel.endpoint is required when otel is enabled")
	}
	return nil
}

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	Settings   string // Direct settings file path (optional)
	EnvFile    string // Direct .env file path (optional)
}

// LoaderOption is a functional option for LoadSettings.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithSettingsFile sets an explicit settings file path.
func WithSettingsFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.Settings = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// settingsSearchPaths are the default locations probed for a settings file.
var settingsSearchPaths = []string{
	"./pipekit.yml",
	"./pipekit.yaml",
	"./config/pipekit.yml",
	"./config/pipekit.yaml",
}

// LoadSettings loads process settings from an optional YAML file, an
// optional .env file, and PIPEKIT_* environment variables, in increasing
// precedence. Missing files are not an error.
func LoadSettings(opts ...LoaderOption) (*Settings, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	settingsFile := lc.Settings
	if settingsFile == "" {
		for _, path := range settingsSearchPaths {
			if lc.FileSystem.Exists(path) {
				settingsFile = path
				break
			}
		}
	}
	envFile := lc.EnvFile
	if envFile == "" && lc.FileSystem.Exists(".env") {
		envFile = ".env"
	}

	v := viper.New()

	// 1. Load YAML settings first (base configuration)
	if settingsFile != "" && lc.FileSystem.Exists(settingsFile) {
		v.SetConfigFile(settingsFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading settings file %s: %w", settingsFile, err)
		}
	}

	// 2. Load .env so its variables join the environment
	if envFile != "" && lc.FileSystem.Exists(envFile) {
		if err := lc.FileSystem.LoadEnv(envFile); err != nil {
			return nil, fmt.Errorf("reading env file %s: %w", envFile, err)
		}
	}

	// 3. Bind PIPEKIT_* environment variables over file values
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	bindPrefixedEnvVars(v)

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unmarshaling settings: %w", err)
	}

	settings.ApplyDefaults()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// bindPrefixedEnvVars sets every PIPEKIT_* environment variable into Viper
// under each plausible nested key, since AutomaticEnv alone does not
// surface variables to Unmarshal.
func bindPrefixedEnvVars(v *viper.Viper) {
	prefix := envPrefix + "_"
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], prefix) {
			continue
		}

		key := strings.TrimPrefix(pair[0], prefix)
		value := pair[1]

		for _, variant := range envKeyVariants(key) {
			v.Set(variant, value)
		}
	}
}

// envKeyVariants creates the nested key variants for an environment
// variable name with the prefix stripped.
// Examples:
//
//	LOGGING_LEVEL -> [logging_level, logging.level]
//	LOGGING_NO_COLOR -> [logging_no_color, logging.no.color, logging.no_color]
func envKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")

	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}

	// Progressive nesting: each split point between dotted prefix and
	// underscored suffix
	for i := 1; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], ".")
		suffix := strings.Join(parts[i:], "_")
		variants = append(variants, prefix+"."+suffix)
	}

	return removeDuplicates(variants)
}

// removeDuplicates removes duplicate strings from a slice.
func removeDuplicates(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))

	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}

	return result
}
