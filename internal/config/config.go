// Package config loads the seedfolio service configuration from YAML.
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

// Config holds the seedfolio API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Logging   LoggingConfig   `yaml:"logging"`
	Auth      AuthConfig      `yaml:"auth"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Cache     CacheConfig     `yaml:"cache"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Search    SearchConfig    `yaml:"search"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatasetConfig points at the static company snapshot.
type DatasetConfig struct {
	Path string `yaml:"path"`
}

// CacheConfig holds the optional embedding-cache backend. Empty addrs
// disable caching entirely; the pipeline works the same either way.
type CacheConfig struct {
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
	TTLHours int      `yaml:"ttl_hours"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// SearchConfig exposes the relevance heuristics as data. The zero value for
// any weight falls back to the tuned default; the synonym and denylist tables
// replace the built-in ones when set.
type SearchConfig struct {
	MinSimilarity       float64 `yaml:"min_similarity"`
	StrongTextThreshold float64 `yaml:"strong_text_threshold"`
	SemanticBoost       float64 `yaml:"semantic_boost"`
	TextBlendWeight     float64 `yaml:"text_blend_weight"`
	SemanticBlendWeight float64 `yaml:"semantic_blend_weight"`
	SemanticOnlyWeight  float64 `yaml:"semantic_only_weight"`
	MinKeywordLen       int     `yaml:"min_keyword_len"`

	Synonyms map[string][]string `yaml:"synonyms"`
	Denylist map[string][]string `yaml:"denylist"`
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

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
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
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Dataset.Path == "" {
		c.Dataset.Path = filepath.Join("data", "companies.json")
	}
	if c.Cache.TTLHours <= 0 {
		c.Cache.TTLHours = 24 * 7
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "all-MiniLM-L6-v2"
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = 384
	}
	if c.Embedding.TimeoutSec <= 0 {
		c.Embedding.TimeoutSec = 5
	}
	if c.Search.MinSimilarity <= 0 {
		c.Search.MinSimilarity = 0.4
	}
	if c.Search.StrongTextThreshold <= 0 {
		c.Search.StrongTextThreshold = 0.8
	}
	if c.Search.SemanticBoost <= 0 {
		c.Search.SemanticBoost = 0.2
	}
	if c.Search.TextBlendWeight <= 0 {
		c.Search.TextBlendWeight = 0.7
	}
	if c.Search.SemanticBlendWeight <= 0 {
		c.Search.SemanticBlendWeight = 0.3
	}
	if c.Search.SemanticOnlyWeight <= 0 {
		c.Search.SemanticOnlyWeight = 0.8
	}
	if c.Search.MinKeywordLen <= 0 {
		c.Search.MinKeywordLen = 3
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset.path is required")
	}
	weights := []struct {
		name string
		v    float64
	}{
		{"search.min_similarity", c.Search.MinSimilarity},
		{"search.strong_text_threshold", c.Search.StrongTextThreshold},
		{"search.semantic_boost", c.Search.SemanticBoost},
		{"search.text_blend_weight", c.Search.TextBlendWeight},
		{"search.semantic_blend_weight", c.Search.SemanticBlendWeight},
		{"search.semantic_only_weight", c.Search.SemanticOnlyWeight},
	}
	for _, w := range weights {
		if w.v < 0 || w.v > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %g", w.name, w.v)
		}
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
