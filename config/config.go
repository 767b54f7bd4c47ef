// Package config provides configuration management for the console service.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultBodySizeLimit is the default maximum request body size (1MB).
const DefaultBodySizeLimit int64 = 1 << 20

// Cache backend types
const (
	CacheTypeNone  = "none"
	CacheTypeLocal = "local"
	CacheTypeRedis = "redis"
)

// Log output formats
const (
	LogFormatAuto   = "auto"
	LogFormatJSON   = "json"
	LogFormatPretty = "pretty"
)

// Config holds the application configuration
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	ChannelTypes ChannelTypesConfig `yaml:"channel_types"`
	Admin        AdminConfig        `yaml:"admin"`
	Cache        CacheConfig        `yaml:"cache"`
	Metrics      MetricsConfig      `yaml:"metrics"`
	Log          LogConfig          `yaml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string `yaml:"port"`
	// MasterKey authenticates admin callers. Empty means unauthenticated (every caller is admin).
	MasterKey string `yaml:"master_key"`
	// ViewerKeys authenticate standard-user callers.
	ViewerKeys    []string `yaml:"viewer_keys"`
	BodySizeLimit int64    `yaml:"body_size_limit"`
}

// ChannelTypesConfig selects the channel type table source.
type ChannelTypesConfig struct {
	// File is an optional YAML table replacing the built-in one.
	File string `yaml:"file"`
}

// AdminConfig toggles the admin surfaces.
type AdminConfig struct {
	EndpointsEnabled bool `yaml:"endpoints_enabled"`
	UIEnabled        bool `yaml:"ui_enabled"`
}

// CacheConfig configures where registry snapshots are kept between runs.
type CacheConfig struct {
	Type  string           `yaml:"type"`
	Local LocalCacheConfig `yaml:"local"`
	Redis RedisCacheConfig `yaml:"redis"`
}

// LocalCacheConfig holds file cache settings
type LocalCacheConfig struct {
	Path string `yaml:"path"`
}

// RedisCacheConfig holds Redis cache settings
type RedisCacheConfig struct {
	URL string        `yaml:"url"`
	Key string        `yaml:"key"`
	TTL time.Duration `yaml:"ttl"`
}

// MetricsConfig holds Prometheus settings
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
}

// LogConfig holds process log settings
type LogConfig struct {
	Format string `yaml:"format"`
	Level  string `yaml:"level"`
}

// LoadResult is returned by Load.
type LoadResult struct {
	Config *Config
	// Source is the config file that was read, or "" when running on defaults and env only.
	Source string
}

// configFileCandidates are tried in order when CONFIG_FILE is not set.
var configFileCandidates = []string{"config/config.yaml", "config.yaml"}

// Load builds the configuration from defaults, an optional YAML file,
// an optional .env file and environment variables, in that order of precedence
// (later wins).
func Load() (*LoadResult, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := buildDefaultConfig()

	source, err := readConfigFile(cfg)
	if err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &LoadResult{Config: cfg, Source: source}, nil
}

func buildDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:          "8080",
			BodySizeLimit: DefaultBodySizeLimit,
		},
		Admin: AdminConfig{
			EndpointsEnabled: true,
			UIEnabled:        true,
		},
		Cache: CacheConfig{
			Type: CacheTypeLocal,
			Local: LocalCacheConfig{
				Path: ".cache/channel_types.json",
			},
			Redis: RedisCacheConfig{
				Key: "gwconsole:channel_types",
				TTL: 30 * 24 * time.Hour,
			},
		},
		Metrics: MetricsConfig{
			Enabled:  false,
			Endpoint: "/metrics",
		},
		Log: LogConfig{
			Format: LogFormatAuto,
			Level:  "info",
		},
	}
}

func readConfigFile(cfg *Config) (string, error) {
	candidates := configFileCandidates
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		candidates = []string{path}
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) && os.Getenv("CONFIG_FILE") == "" {
				continue
			}
			return "", fmt.Errorf("failed to read config file: %w", err)
		}
		expanded := expandString(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return "", fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		return path, nil
	}
	return "", nil
}

var placeholderPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// expandString replaces ${VAR} and ${VAR:-default} placeholders. A variable
// that is unset or empty falls back to its default; without a default the
// placeholder is left as-is so the problem stays visible.
func expandString(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return placeholderPattern.ReplaceAllStringFunc(s, func(match string) string {
		groups := placeholderPattern.FindStringSubmatch(match)
		name, hasDefault, def := groups[1], groups[2] != "", groups[3]

		if v, ok := os.LookupEnv(name); ok && v != "" {
			return v
		}
		if hasDefault {
			return def
		}
		return match
	})
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("CONSOLE_MASTER_KEY"); v != "" {
		cfg.Server.MasterKey = v
	}
	if v := os.Getenv("CONSOLE_VIEWER_KEYS"); v != "" {
		cfg.Server.ViewerKeys = splitList(v)
	}
	if v := os.Getenv("BODY_SIZE_LIMIT"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid BODY_SIZE_LIMIT %q: %w", v, err)
		}
		cfg.Server.BodySizeLimit = n
	}
	if v := os.Getenv("CHANNEL_TYPES_FILE"); v != "" {
		cfg.ChannelTypes.File = v
	}
	if err := envBool("ADMIN_ENDPOINTS_ENABLED", &cfg.Admin.EndpointsEnabled); err != nil {
		return err
	}
	if err := envBool("ADMIN_UI_ENABLED", &cfg.Admin.UIEnabled); err != nil {
		return err
	}
	if v := os.Getenv("CACHE_TYPE"); v != "" {
		cfg.Cache.Type = v
	}
	if v := os.Getenv("CACHE_LOCAL_PATH"); v != "" {
		cfg.Cache.Local.Path = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Cache.Redis.URL = v
	}
	if v := os.Getenv("REDIS_KEY"); v != "" {
		cfg.Cache.Redis.Key = v
	}
	if v := os.Getenv("REDIS_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_TTL %q: %w", v, err)
		}
		cfg.Cache.Redis.TTL = d
	}
	if err := envBool("METRICS_ENABLED", &cfg.Metrics.Enabled); err != nil {
		return err
	}
	if v := os.Getenv("METRICS_ENDPOINT"); v != "" {
		cfg.Metrics.Endpoint = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

func envBool(name string, dst *bool) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	*dst = b
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks settings that would otherwise fail later in less obvious ways.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	if c.Server.BodySizeLimit < 0 {
		errs = append(errs, errors.New("server.body_size_limit must not be negative"))
	}
	for _, k := range c.Server.ViewerKeys {
		if c.Server.MasterKey != "" && k == c.Server.MasterKey {
			errs = append(errs, errors.New("server.viewer_keys must not contain the master key"))
			break
		}
	}

	switch c.Cache.Type {
	case CacheTypeNone, CacheTypeLocal:
	case CacheTypeRedis:
		if c.Cache.Redis.URL == "" {
			errs = append(errs, errors.New("cache.redis.url is required when cache.type is redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown cache.type %q (valid: none, local, redis)", c.Cache.Type))
	}

	switch c.Log.Format {
	case LogFormatAuto, LogFormatJSON, LogFormatPretty:
	default:
		errs = append(errs, fmt.Errorf("unknown log.format %q (valid: auto, json, pretty)", c.Log.Format))
	}

	return errors.Join(errs...)
}
