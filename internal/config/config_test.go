package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("GOOGLE_API_KEY", "")

		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "ideaforge", cfg.Name)
		assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
		assert.Equal(t, 5, cfg.Pipeline.RetrievalK)
		assert.Equal(t, 3, cfg.Pipeline.MinPrompts)
		assert.Equal(t, 5, cfg.Pipeline.MaxPrompts)
		assert.Equal(t, 3, cfg.Pipeline.MaxOpportunities)
	})

	t.Run("yaml overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		yaml := `
llm:
  model: gemini-2.5-pro
  temperature: 0.2
index:
  path: /tmp/custom.db
pipeline:
  max_opportunities: 2
`
		require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
		assert.InDelta(t, 0.2, cfg.LLM.Temperature, 0.001)
		assert.Equal(t, "/tmp/custom.db", cfg.Index.Path)
		assert.Equal(t, 2, cfg.Pipeline.MaxOpportunities)
		assert.Equal(t, 8192, cfg.LLM.MaxOutputTokens, "unset fields keep defaults")
	})

	t.Run("malformed yaml fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("llm: [not a map"), 0644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestEnvOverrides(t *testing.T) {
	t.Run("gemini key wins over google key", func(t *testing.T) {
		t.Setenv("GOOGLE_API_KEY", "google-key")
		t.Setenv("GEMINI_API_KEY", "gemini-key")

		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "gemini-key", cfg.LLM.APIKey)
	})

	t.Run("database path override", func(t *testing.T) {
		t.Setenv("IDEAFORGE_DB", "/var/lib/ideaforge.db")
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "/var/lib/ideaforge.db", cfg.Index.Path)
	})

	t.Run("env beats file", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "env-key")
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("llm:\n  api_key: file-key\n"), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "env-key", cfg.LLM.APIKey)
	})
}

func TestGetLLMTimeout(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 120*time.Second, cfg.GetLLMTimeout())

	cfg.LLM.Timeout = "30s"
	assert.Equal(t, 30*time.Second, cfg.GetLLMTimeout())

	cfg.LLM.Timeout = "garbage"
	assert.Equal(t, 120*time.Second, cfg.GetLLMTimeout())
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.Validate(), "missing API key")

	cfg.LLM.APIKey = "key"
	assert.NoError(t, cfg.Validate())

	cfg.LLM.Model = ""
	assert.Error(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.LLM.Model = "gemini-2.5-flash"
	require.NoError(t, cfg.Save(path))

	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("IDEAFORGE_DB", "")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", loaded.LLM.Model)
}
