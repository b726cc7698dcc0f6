// Package config loads ideaforge configuration from YAML with environment
// overrides for secrets.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all ideaforge configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Completion model configuration
	LLM LLMConfig `yaml:"llm"`

	// Embedding model configuration
	Embedding EmbeddingConfig `yaml:"embedding"`

	// Document index configuration
	Index IndexConfig `yaml:"index"`

	// Workflow configuration
	Pipeline PipelineConfig `yaml:"pipeline"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig configures the Gemini completion client.
type LLMConfig struct {
	APIKey          string  `yaml:"api_key"`
	Model           string  `yaml:"model"`
	BaseURL         string  `yaml:"base_url"`
	Temperature     float64 `yaml:"temperature"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
	Timeout         string  `yaml:"timeout"`
}

// EmbeddingConfig configures the embedding engine.
type EmbeddingConfig struct {
	Model string `yaml:"model"`
}

// IndexConfig configures the sqlite-vec document index.
type IndexConfig struct {
	Path         string `yaml:"path"`
	ChunkSize    int    `yaml:"chunk_size"`
	ChunkOverlap int    `yaml:"chunk_overlap"`
}

// PipelineConfig configures the ideation workflow thresholds.
type PipelineConfig struct {
	// RetrievalK is how many index snippets the brainstorm stage folds
	// into its prompt.
	RetrievalK int `yaml:"retrieval_k"`

	// MinPrompts is the brainstorm padding floor; MaxPrompts the cap.
	MinPrompts int `yaml:"min_prompts"`
	MaxPrompts int `yaml:"max_prompts"`

	// MaxOpportunities caps the scored ranking.
	MaxOpportunities int `yaml:"max_opportunities"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Name:    "ideaforge",
		Version: "0.1.0",

		LLM: LLMConfig{
			Model:           "gemini-2.0-flash",
			BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
			Temperature:     0.7,
			MaxOutputTokens: 8192,
			Timeout:         "120s",
		},

		Embedding: EmbeddingConfig{
			Model: "gemini-embedding-001",
		},

		Index: IndexConfig{
			Path:         "data/ideaforge.db",
			ChunkSize:    200,
			ChunkOverlap: 40,
		},

		Pipeline: PipelineConfig{
			RetrievalK:       5,
			MinPrompts:       3,
			MaxPrompts:       5,
			MaxOpportunities: 3,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file. A missing file returns the
// defaults; environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides. GEMINI_API_KEY
// wins over GOOGLE_API_KEY, matching the genai SDK's convention.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if path := os.Getenv("IDEAFORGE_DB"); path != "" {
		c.Index.Path = path
	}
}

// GetLLMTimeout returns the completion timeout as a duration.
func (c *Config) GetLLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil {
		return 120 * time.Second
	}
	return d
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("LLM API key not configured (set GEMINI_API_KEY or GOOGLE_API_KEY)")
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("LLM model not configured")
	}
	return nil
}
