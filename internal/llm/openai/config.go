package openai

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/joseph-ayodele/docsheet/internal/common"
)

// Config for the OpenAI-compatible chat client. Groq is the default endpoint.
type Config struct {
	APIKey      string        // if empty, falls back to env GROQ_API_KEY
	BaseURL     string        // default https://api.groq.com/openai/v1
	Model       string        // e.g., "llama-3.3-70b-versatile"
	Temperature float32       // 0..2
	MaxTokens   int           // completion budget, default 8000
	Timeout     time.Duration // http client timeout

	// RequestsPerMinute paces Complete calls; 0 means unpaced.
	RequestsPerMinute float64
}

type Client struct {
	cfg     Config
	api     *goopenai.Client
	limiter *rate.Limiter
	log     *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GROQ_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, common.NewKindError(common.KindMissingCredential, "an API key is required to call the model", common.ErrUnauthorized)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = common.DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = common.DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 8000
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	apiCfg := goopenai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = cfg.BaseURL
	apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Duration(float64(time.Minute)/cfg.RequestsPerMinute)), 1)
	}

	return &Client{
		cfg:     cfg,
		api:     goopenai.NewClientWithConfig(apiCfg),
		limiter: limiter,
		log:     logger,
	}, nil
}

// ConfigFromCommon maps the application LLM settings onto a client Config.
func ConfigFromCommon(c common.LLMConfig) Config {
	return Config{
		APIKey:            c.APIKey,
		BaseURL:           c.BaseURL,
		Model:             c.Model,
		Temperature:       c.Temperature,
		MaxTokens:         c.MaxTokens,
		Timeout:           c.Timeout,
		RequestsPerMinute: c.RequestsPerMinute,
	}
}

// Model reports the configured model name.
func (c *Client) Model() string { return c.cfg.Model }
