// Package config loads pipeline configuration from an optional yaml file
// layered over defaults, with .env support for secrets such as the LLM API
// key and repository access tokens.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full configuration tree.
type Config struct {
	Repo     RepoConfig     `yaml:"repo"`
	Analysis AnalysisConfig `yaml:"analysis"`
	LLM      LLMConfig      `yaml:"llm"`
}

// RepoConfig bounds repository acquisition.
type RepoConfig struct {
	// TempDir is the root directory for cloned working copies.
	TempDir string `yaml:"temp_dir"`

	// MaxFiles truncates the listing to an order-preserving prefix.
	MaxFiles int `yaml:"max_files"`

	// MaxFileSizeMB excludes larger files from analysis with a warning.
	MaxFileSizeMB int `yaml:"max_file_size_mb"`

	// MaxRepoSizeMB warns when the retained listing exceeds this total.
	MaxRepoSizeMB int `yaml:"max_repo_size_mb"`

	// ExcludeGlobs are additional path patterns dropped from the listing.
	ExcludeGlobs []string `yaml:"exclude_globs"`

	// ContentCacheSize bounds the file-content read cache.
	ContentCacheSize int `yaml:"content_cache_size"`
}

// AnalysisConfig bounds the code analysis phase.
type AnalysisConfig struct {
	// Workers sizes the per-file extraction pool. Zero means one per CPU.
	Workers int `yaml:"workers"`

	// QueueSize bounds the extraction job queue.
	QueueSize int `yaml:"queue_size"`

	// TimeoutSeconds is the wall-clock budget for a whole run, enforced by
	// the caller through the run context.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// LLMConfig configures the text-generation collaborator.
type LLMConfig struct {
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	MaxTokens int64  `yaml:"max_tokens"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Repo: RepoConfig{
			TempDir:          filepath.Join(os.TempDir(), "repoprofile"),
			MaxFiles:         500,
			MaxFileSizeMB:    1,
			MaxRepoSizeMB:    50,
			ContentCacheSize: 256,
		},
		Analysis: AnalysisConfig{
			QueueSize:      256,
			TimeoutSeconds: 300,
		},
		LLM: LLMConfig{
			APIKeyEnv: "GROQ_API_KEY",
			MaxTokens: 2048,
		},
	}
}

// Load reads a yaml file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadEnv loads .env files into the process environment. Missing files are
// not an error.
func LoadEnv(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		_ = godotenv.Load(path)
	}
}

// Timeout returns the analysis wall-clock budget as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Analysis.TimeoutSeconds) * time.Second
}

// MaxFileSizeBytes converts the per-file ceiling to bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.Repo.MaxFileSizeMB) * 1024 * 1024
}

// MaxRepoSizeBytes converts the repository ceiling to bytes.
func (c *Config) MaxRepoSizeBytes() int64 {
	return int64(c.Repo.MaxRepoSizeMB) * 1024 * 1024
}

// APIKey resolves the LLM API key from the configured environment variable.
func (c *Config) APIKey() string {
	if c.LLM.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.LLM.APIKeyEnv)
}
