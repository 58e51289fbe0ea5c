package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("DOCSHEET_LLM_API_KEY", "")

	cfg := LoadConfig(NewViper())

	assert.Equal(t, DefaultBaseURL, cfg.LLM.BaseURL)
	assert.Equal(t, DefaultModel, cfg.LLM.Model)
	assert.InDelta(t, 0.1, cfg.LLM.Temperature, 1e-6)
	assert.Equal(t, 8000, cfg.LLM.MaxTokens)
	assert.Equal(t, 90*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "native", cfg.PDF.Method)
	assert.Equal(t, "standard", cfg.Evaluate.Mode)
	assert.Equal(t, "evaluation_report.txt", cfg.Output.ReportName)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, KindMissingCredential, KindOf(cfg.RequireCredential()))
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DOCSHEET_LLM_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "gsk_from_env")
	t.Setenv("DOCSHEET_LLM_MODEL", "llama-3.1-8b-instant")
	t.Setenv("DOCSHEET_EVALUATE_MODE", "WEIGHTED")

	cfg := LoadConfig(NewViper())

	assert.Equal(t, "gsk_from_env", cfg.LLM.APIKey)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.LLM.Model)
	assert.Equal(t, "weighted", cfg.Evaluate.Mode)
	assert.NoError(t, cfg.RequireCredential())
}

func TestConfig_Validate(t *testing.T) {
	cfg := LoadConfig(NewViper())
	cfg.PDF.Method = "ocr"
	cfg.Evaluate.Mode = "fancy"
	cfg.LLM.MaxTokens = -1

	err := cfg.Validate()

	require.Error(t, err)
	assert.Equal(t, KindConfig, KindOf(err))
	assert.Contains(t, err.Error(), "pdf.method")
	assert.Contains(t, err.Error(), "evaluate.mode")
	assert.Contains(t, err.Error(), "llm.max_tokens")
}

func TestConfig_Redacted(t *testing.T) {
	cfg := Config{LLM: LLMConfig{APIKey: "gsk_1234567890abcd"}}

	red := cfg.Redacted()

	assert.Equal(t, "gsk_…abcd", red.LLM.APIKey)
	assert.Equal(t, "gsk_1234567890abcd", cfg.LLM.APIKey)
	assert.Equal(t, "****", Config{LLM: LLMConfig{APIKey: "short"}}.Redacted().LLM.APIKey)
}
