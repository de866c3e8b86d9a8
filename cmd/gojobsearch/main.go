package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gojobsearch/internal/app"
	"github.com/hyperifyio/gojobsearch/internal/report"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}

	var (
		query      string
		useRemote  bool
		timeout    time.Duration
		baseURL    string
		llmBase    string
		llmModel   string
		llmKey     string
		configPath string
		pdfPath    string
		verbose    bool
	)

	flag.StringVar(&query, "query", "", "Job search query; positional arguments are joined as the query when omitted")
	flag.BoolVar(&useRemote, "remote", false, "Use the remote language model to extract filters (needs OPENAI_API_KEY)")
	flag.DurationVar(&timeout, "timeout", 0, "Results fetch timeout (default 10s)")
	flag.StringVar(&baseURL, "base", "", "Careers search base URL override")
	flag.StringVar(&llmBase, "llm.base", "", "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", "", "Model name for remote extraction")
	flag.StringVar(&llmKey, "llm.key", "", "API key for remote extraction")
	flag.StringVar(&configPath, "config", "", "Path to YAML config file")
	flag.StringVar(&pdfPath, "pdf", "", "Also write the results to this PDF file")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if query == "" {
		query = strings.Join(flag.Args(), " ")
	}
	if strings.TrimSpace(query) == "" {
		fmt.Fprintln(os.Stderr, "usage: gojobsearch [flags] <query>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := app.Config{
		BaseURL:    baseURL,
		Timeout:    timeout,
		LLMBaseURL: llmBase,
		LLMModel:   llmModel,
		LLMAPIKey:  llmKey,
		Verbose:    verbose,
	}
	app.ApplyEnvToConfig(&cfg)
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("config file")
		}
		app.MergeFileConfig(&cfg, fc)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	a := app.New(cfg)
	if useRemote && !a.RemoteEnabled() {
		log.Warn().Msg("remote extraction requested but no API key configured; the heuristic extractor will be used")
	}

	outcome := a.Search(context.Background(), query, useRemote)
	for _, w := range outcome.Warnings {
		log.Warn().Msg(w)
	}

	fmt.Println("Filters detected:")
	if outcome.Filters.Len() == 0 {
		fmt.Println("  (none)")
	}
	for _, p := range outcome.Filters.Pairs() {
		fmt.Printf("  %s = %s\n", p.Key, p.Value)
	}
	fmt.Printf("\nSearch URL: %s\n\n", outcome.URL)

	if len(outcome.Results) == 0 {
		fmt.Println("No results found or parsing failed. Try different keywords or open the search URL directly.")
	} else {
		fmt.Printf("Found %d result(s):\n\n", len(outcome.Results))
		for i, e := range outcome.Results {
			fmt.Printf("%d. %s\n   %s\n", i+1, e.Title, e.Link)
			if e.Location != "" {
				fmt.Printf("   Location: %s\n", e.Location)
			}
			if e.Snippet != "" {
				fmt.Printf("   %s\n", e.Snippet)
			}
			fmt.Println()
		}
	}

	if pdfPath != "" {
		if err := report.WritePDF(outcome, pdfPath); err != nil {
			log.Error().Err(err).Str("path", pdfPath).Msg("write pdf")
			os.Exit(1)
		}
		log.Info().Str("path", pdfPath).Msg("results written")
	}
}
