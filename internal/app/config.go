package app

import (
	"time"

	"github.com/hyperifyio/gojobsearch/internal/careers"
	"github.com/hyperifyio/gojobsearch/internal/scrape"
)

// Config holds runtime configuration. Precedence: flags > environment >
// config file > defaults.
type Config struct {
	// Search endpoint and fetch behavior.
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Remote extraction (OpenAI-compatible). An empty APIKey disables
	// remote mode entirely.
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Web UI.
	ListenAddr string

	Verbose bool
}

const defaultLLMModel = "gpt-3.5-turbo"

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = careers.DefaultBaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = scrape.DefaultUserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = scrape.DefaultTimeout
	}
	if c.LLMModel == "" {
		c.LLMModel = defaultLLMModel
	}
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
}
