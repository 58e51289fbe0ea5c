package common

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	PDF      PDFConfig      `yaml:"pdf"`
	Output   OutputConfig   `yaml:"output"`
	Evaluate EvaluateConfig `yaml:"evaluate"`
	Cache    CacheConfig    `yaml:"cache"`
	Log      LogConfig      `yaml:"log"`
}

// LLMConfig holds LLM-related configuration
type LLMConfig struct {
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout"`
	// RequestsPerMinute paces model calls in batch mode; 0 disables pacing.
	RequestsPerMinute float64 `yaml:"requests_per_minute"`
}

// PDFConfig selects the text extraction backend.
type PDFConfig struct {
	Method    string `yaml:"method"` // "native" | "pdftotext"
	Pdftotext string `yaml:"pdftotext"`
	MaxPages  int    `yaml:"max_pages"`
}

// OutputConfig controls where spreadsheets and reports land.
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	WriteReport bool   `yaml:"write_report"`
	ReportName  string `yaml:"report_name"`
}

// EvaluateConfig picks the scoring scheme shown by default.
type EvaluateConfig struct {
	Mode string `yaml:"mode"` // "standard" | "weighted"
}

// CacheConfig sizes the in-memory run cache.
type CacheConfig struct {
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" | "json"
}

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.3-70b-versatile"
	EnvPrefix      = "DOCSHEET"
)

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", DefaultBaseURL)
	v.SetDefault("llm.model", DefaultModel)
	v.SetDefault("llm.temperature", 0.1)
	v.SetDefault("llm.max_tokens", 8000)
	v.SetDefault("llm.timeout", 90*time.Second)
	v.SetDefault("llm.requests_per_minute", 0)

	v.SetDefault("pdf.method", "native")
	v.SetDefault("pdf.pdftotext", "pdftotext")
	v.SetDefault("pdf.max_pages", 0)

	v.SetDefault("output.dir", ".")
	v.SetDefault("output.write_report", false)
	v.SetDefault("output.report_name", "evaluation_report.txt")

	v.SetDefault("evaluate.mode", "standard")

	v.SetDefault("cache.ttl", 30*time.Minute)
	v.SetDefault("cache.cleanup_interval", 10*time.Minute)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// BindEnv wires DOCSHEET_* variables plus the provider key fallbacks.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("llm.api_key", EnvPrefix+"_LLM_API_KEY", "GROQ_API_KEY", "OPENAI_API_KEY")
}

// NewViper returns a viper instance with defaults and env bindings applied.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)
	return v
}

// LoadConfig reads the typed configuration out of v.
func LoadConfig(v *viper.Viper) *Config {
	return &Config{
		LLM: LLMConfig{
			APIKey:            strings.TrimSpace(v.GetString("llm.api_key")),
			BaseURL:           v.GetString("llm.base_url"),
			Model:             v.GetString("llm.model"),
			Temperature:       float32(v.GetFloat64("llm.temperature")),
			MaxTokens:         v.GetInt("llm.max_tokens"),
			Timeout:           v.GetDuration("llm.timeout"),
			RequestsPerMinute: v.GetFloat64("llm.requests_per_minute"),
		},
		PDF: PDFConfig{
			Method:    strings.ToLower(v.GetString("pdf.method")),
			Pdftotext: v.GetString("pdf.pdftotext"),
			MaxPages:  v.GetInt("pdf.max_pages"),
		},
		Output: OutputConfig{
			Dir:         v.GetString("output.dir"),
			WriteReport: v.GetBool("output.write_report"),
			ReportName:  v.GetString("output.report_name"),
		},
		Evaluate: EvaluateConfig{
			Mode: strings.ToLower(v.GetString("evaluate.mode")),
		},
		Cache: CacheConfig{
			TTL:             v.GetDuration("cache.ttl"),
			CleanupInterval: v.GetDuration("cache.cleanup_interval"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
	}
}

// Validate checks settings that do not depend on the command being run.
func (c *Config) Validate() error {
	v := NewValidator().
		Field("pdf.method", c.PDF.Method, OneOf("native", "pdftotext")).
		Field("evaluate.mode", c.Evaluate.Mode, OneOf("standard", "weighted")).
		Field("llm.base_url", c.LLM.BaseURL, Required).
		Field("llm.model", c.LLM.Model, Required).
		Field("llm.max_tokens", c.LLM.MaxTokens, NonNegative).
		Field("llm.requests_per_minute", c.LLM.RequestsPerMinute, NonNegative)
	if c.PDF.Method == "pdftotext" {
		v.Field("pdf.pdftotext", c.PDF.Pdftotext, Required)
	}
	return v.AsConfigError()
}

// RequireCredential is the precondition for any command that calls the model.
func (c *Config) RequireCredential() error {
	if c.LLM.APIKey == "" {
		return NewKindError(KindMissingCredential, "llm.api_key is required", ErrUnauthorized)
	}
	return nil
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	if c.LLM.APIKey != "" {
		k := c.LLM.APIKey
		if len(k) > 8 {
			c.LLM.APIKey = k[:4] + "…" + k[len(k)-4:]
		} else {
			c.LLM.APIKey = "****"
		}
	}
	return c
}
