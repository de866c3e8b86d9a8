// Package app wires the extractors, URL builder and scraper into one
// search flow with degrade-don't-abort error handling.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gojobsearch/internal/careers"
	"github.com/hyperifyio/gojobsearch/internal/extract"
	"github.com/hyperifyio/gojobsearch/internal/filter"
	"github.com/hyperifyio/gojobsearch/internal/llm"
	"github.com/hyperifyio/gojobsearch/internal/scrape"
)

// App performs searches. Every invocation recomputes from scratch; no state
// is shared between searches.
type App struct {
	cfg           Config
	heuristic     extract.Heuristic
	remote        *extract.Remote
	scraper       *scrape.Client
	remoteEnabled bool
}

// Outcome is everything one search produced. Warnings carry the reasons for
// any degraded step; they are user-visible but never fatal.
type Outcome struct {
	Query    string            `json:"query"`
	Filters  filter.Model      `json:"filters"`
	URL      string            `json:"url"`
	Results  []scrape.JobEntry `json:"results"`
	Warnings []string          `json:"warnings,omitempty"`
}

// New builds an App from cfg. Remote extraction is available only when an
// API key was configured; the capability is decided here, once.
func New(cfg Config) *App {
	cfg.applyDefaults()
	a := &App{
		cfg: cfg,
		scraper: &scrape.Client{
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.Timeout,
		},
	}
	if cfg.LLMAPIKey != "" {
		a.remote = &extract.Remote{
			Client: llm.New(cfg.LLMBaseURL, cfg.LLMAPIKey),
			Model:  cfg.LLMModel,
		}
		a.remoteEnabled = true
	}
	log.Debug().Bool("remote", a.remoteEnabled).Str("base", cfg.BaseURL).Msg("app configured")
	return a
}

// RemoteEnabled reports whether remote extraction was configured at startup.
func (a *App) RemoteEnabled() bool {
	return a.remoteEnabled
}

// ListenAddr returns the web UI listen address after defaulting.
func (a *App) ListenAddr() string {
	return a.cfg.ListenAddr
}

// Resolve turns the query into a filter model and search URL. With useRemote
// set it tries the remote extractor first and falls back to the keyword
// tables on any failure, reporting the reason as a warning.
func (a *App) Resolve(ctx context.Context, query string, useRemote bool) (filter.Model, string, []string) {
	var warnings []string
	var m filter.Model
	switch {
	case useRemote && !a.remoteEnabled:
		warnings = append(warnings, "remote extraction unavailable: no API key configured; using heuristic extractor")
		m, _ = a.heuristic.Extract(ctx, query)
	case useRemote:
		var err error
		m, err = a.remote.Extract(ctx, query)
		if err != nil {
			log.Warn().Err(err).Msg("remote extraction failed, falling back to heuristic")
			warnings = append(warnings, fmt.Sprintf("remote extraction failed: %v; using heuristic extractor", err))
			m, _ = a.heuristic.Extract(ctx, query)
		}
	default:
		m, _ = a.heuristic.Extract(ctx, query)
	}
	return m, careers.BuildURL(a.cfg.BaseURL, m), warnings
}

// Search resolves the query and fetches the results page. A fetch failure
// degrades to an empty result list with a warning; the flow never aborts.
func (a *App) Search(ctx context.Context, query string, useRemote bool) Outcome {
	m, u, warnings := a.Resolve(ctx, query, useRemote)
	out := Outcome{Query: query, Filters: m, URL: u, Warnings: warnings}

	results, err := a.scraper.Fetch(ctx, u)
	if err != nil {
		log.Warn().Err(err).Str("url", u).Msg("results fetch failed")
		out.Warnings = append(out.Warnings, fmt.Sprintf("failed to fetch results: %v", err))
		return out
	}
	out.Results = results
	return out
}
