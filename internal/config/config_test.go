package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/educhain-mcp/internal/content"
)

// isolate runs the test in an empty directory with no provider keys set.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, names := range providerKeyEnv {
		for _, name := range names {
			t.Setenv(name, "")
		}
	}
	t.Setenv("EDUCHAIN_LLM_API_KEY", "")
	t.Setenv("EDUCHAIN_LLM_PROVIDER", "")
	return dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

// --- Load ---

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "outputs", cfg.OutputDir)
	assert.Equal(t, content.DefaultTopic, cfg.DefaultTopic)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 4096, cfg.LLM.MaxTokens)
	assert.InDelta(t, 0.2, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, 60*time.Second, cfg.Pipeline.Timeout)
	assert.Equal(t, 3, cfg.Pipeline.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Pipeline.RetryDelay)
	assert.False(t, cfg.Pipeline.RetryOnTimeout)
	assert.False(t, cfg.Server.Strict)
	assert.False(t, cfg.Server.LiveGeneration)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_FromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("EDUCHAIN_OUTPUT_DIR", "/tmp/edu")
	t.Setenv("EDUCHAIN_LLM_PROVIDER", "openai")
	t.Setenv("EDUCHAIN_PIPELINE_TIMEOUT", "5s")
	t.Setenv("EDUCHAIN_PIPELINE_MAX_ATTEMPTS", "2")
	t.Setenv("EDUCHAIN_SERVER_LIVE_GENERATION", "true")
	t.Setenv("EDUCHAIN_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/edu", cfg.OutputDir)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 5*time.Second, cfg.Pipeline.Timeout)
	assert.Equal(t, 2, cfg.Pipeline.MaxAttempts)
	assert.True(t, cfg.Server.LiveGeneration)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ProviderKeyFromConventionalEnv(t *testing.T) {
	isolate(t)
	t.Setenv("GEMINI_API_KEY", "gem-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "gem-key", cfg.LLM.APIKey)
	assert.NoError(t, cfg.ValidateGeneration())
}

func TestLoad_PrefixedKeyWins(t *testing.T) {
	isolate(t)
	t.Setenv("GOOGLE_API_KEY", "google")
	t.Setenv("EDUCHAIN_LLM_API_KEY", "explicit")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "explicit", cfg.LLM.APIKey)
}

func TestLoad_YAMLFileInWorkingDir(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "educhain.yaml"), `
output_dir: generated
llm:
  provider: anthropic
  model: claude-sonnet
pipeline:
  retry_on_timeout: true
  retry_delay: 500ms
`)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "generated", cfg.OutputDir)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "claude-sonnet", cfg.LLM.Model)
	assert.True(t, cfg.Pipeline.RetryOnTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Pipeline.RetryDelay)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "educhain.yaml"), "output_dir: from-file\n")
	t.Setenv("EDUCHAIN_OUTPUT_DIR", "from-env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.OutputDir)
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	isolate(t)
	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env"), "ANTHROPIC_API_KEY=from-dotenv\nEDUCHAIN_LLM_PROVIDER=anthropic\n")
	// LookupEnv must see these unset for the dotenv values to apply.
	os.Unsetenv("ANTHROPIC_API_KEY")
	os.Unsetenv("EDUCHAIN_LLM_PROVIDER")
	t.Cleanup(func() {
		os.Unsetenv("ANTHROPIC_API_KEY")
		os.Unsetenv("EDUCHAIN_LLM_PROVIDER")
	})

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "from-dotenv", cfg.LLM.APIKey)
}

func TestLoad_DotEnvDoesNotOverride(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env"), "EDUCHAIN_OUTPUT_DIR=dotenv\n")
	t.Setenv("EDUCHAIN_OUTPUT_DIR", "process")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "process", cfg.OutputDir)
}

// --- Validate ---

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown provider", map[string]string{"EDUCHAIN_LLM_PROVIDER": "llama"}},
		{"zero attempts", map[string]string{"EDUCHAIN_PIPELINE_MAX_ATTEMPTS": "0"}},
		{"bad log level", map[string]string{"EDUCHAIN_LOG_LEVEL": "verbose"}},
		{"bad log format", map[string]string{"EDUCHAIN_LOG_FORMAT": "xml"}},
		{"bad base url", map[string]string{"EDUCHAIN_LLM_BASE_URL": "not a url"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestValidateGeneration_MissingKey(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err, "a missing key is not a load error")

	err = cfg.ValidateGeneration()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_API_KEY")
}

func TestValidateGeneration_MockNeedsNoKey(t *testing.T) {
	isolate(t)
	t.Setenv("EDUCHAIN_LLM_PROVIDER", "mock")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.NoError(t, cfg.ValidateGeneration())
}

func TestPipelineSettings(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)

	ps := cfg.PipelineSettings()
	assert.Equal(t, cfg.Pipeline.Timeout, ps.Timeout)
	assert.Equal(t, cfg.LLM.MaxTokens, ps.MaxTokens)

	lc := cfg.LLMProvider()
	assert.Equal(t, "gemini", lc.Provider)
}
