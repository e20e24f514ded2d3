// Package config loads vue2doric.yaml and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/recera/vue2doric/pkg/doric"
)

// FileName is the default configuration file name.
const FileName = "vue2doric.yaml"

// Sentinel validation errors.
var (
	ErrUnknownSymbol      = errors.New("unknown doric symbol")
	ErrInvalidLogLevel    = errors.New("invalid log level")
	ErrInvalidLogFormat   = errors.New("invalid log format")
	ErrEmptyRuntimeModule = errors.New("runtime module must not be empty")
	ErrInvalidMaxEntries  = errors.New("cache max entries must not be negative")
)

// Config holds all configuration for the compiler CLI.
type Config struct {
	OutDir        string            `mapstructure:"out_dir" yaml:"out_dir"`
	RuntimeModule string            `mapstructure:"runtime_module" yaml:"runtime_module"`
	Panel         bool              `mapstructure:"panel" yaml:"panel"`
	Verify        bool              `mapstructure:"verify" yaml:"verify"`
	Tags          map[string]string `mapstructure:"tags" yaml:"tags"`
	Cache         CacheConfig       `mapstructure:"cache" yaml:"cache"`
	Logging       LoggingConfig     `mapstructure:"logging" yaml:"logging"`
}

// CacheConfig holds compile cache configuration.
type CacheConfig struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
	Dir        string `mapstructure:"dir" yaml:"dir"`
	MaxEntries int    `mapstructure:"max_entries" yaml:"max_entries"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

const defaultMaxEntries = 500

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		RuntimeModule: doric.RuntimeModule,
		Tags:          map[string]string{},
		Cache:         CacheConfig{Enabled: true, MaxEntries: defaultMaxEntries},
		Logging:       LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads configuration from path, or from vue2doric.yaml in the current
// directory when path is empty. A missing default file yields defaults; an
// explicit path must exist. VUE2DORIC_* environment variables override both.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("VUE2DORIC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Tags == nil {
		cfg.Tags = map[string]string{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("out_dir", d.OutDir)
	v.SetDefault("runtime_module", d.RuntimeModule)
	v.SetDefault("panel", d.Panel)
	v.SetDefault("verify", d.Verify)
	v.SetDefault("tags", map[string]string{})

	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.max_entries", d.Cache.MaxEntries)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.RuntimeModule) == "" {
		return ErrEmptyRuntimeModule
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxEntries, c.Cache.MaxEntries)
	}
	_, err := c.TagMap()
	return err
}

// TagMap resolves the configured tag additions to Doric symbols.
func (c *Config) TagMap() (map[string]doric.Symbol, error) {
	tags := make(map[string]doric.Symbol, len(c.Tags))
	for _, tag := range sortedKeys(c.Tags) {
		sym, ok := doric.ParseSymbol(c.Tags[tag])
		if !ok {
			return nil, fmt.Errorf("%w: %q for tag <%s>", ErrUnknownSymbol, c.Tags[tag], tag)
		}
		tags[strings.ToLower(tag)] = sym
	}
	return tags, nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, level)
}

// NewLogger builds a slog logger writing to w in the configured format.
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	switch c.Logging.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
}

// Save writes c as YAML to path. It refuses to overwrite an existing file
// unless force is set.
func (c *Config) Save(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists: %w", path, os.ErrExist)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
