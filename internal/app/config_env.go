package app

import (
	"os"
	"strings"
	"time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values (typically from flags) take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.LLMAPIKey == "" {
		// OPENAI_API_KEY is the historical name; LLM_API_KEY works for
		// non-OpenAI backends. Absence silently disables remote mode.
		v := os.Getenv("OPENAI_API_KEY")
		if v == "" {
			v = os.Getenv("LLM_API_KEY")
		}
		cfg.LLMAPIKey = v
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = os.Getenv("LLM_BASE_URL")
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = os.Getenv("LLM_MODEL")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("JOBS_BASE_URL")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = os.Getenv("JOBS_USER_AGENT")
	}
	if cfg.Timeout == 0 {
		if s := os.Getenv("JOBS_TIMEOUT"); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				cfg.Timeout = d
			}
		}
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = os.Getenv("LISTEN_ADDR")
	}

	if !cfg.Verbose {
		switch strings.ToLower(strings.TrimSpace(os.Getenv("VERBOSE"))) {
		case "1", "true", "yes", "on":
			cfg.Verbose = true
		}
	}
}
