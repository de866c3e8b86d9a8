package main

import (
	"flag"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gojobsearch/internal/app"
	"github.com/hyperifyio/gojobsearch/internal/webui"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}

	var (
		addr       string
		baseURL    string
		timeout    time.Duration
		configPath string
		verbose    bool
	)
	flag.StringVar(&addr, "addr", "", "Listen address (default :8080)")
	flag.StringVar(&baseURL, "base", "", "Careers search base URL override")
	flag.DurationVar(&timeout, "timeout", 0, "Results fetch timeout (default 10s)")
	flag.StringVar(&configPath, "config", "", "Path to YAML config file")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg := app.Config{
		BaseURL:    baseURL,
		Timeout:    timeout,
		ListenAddr: addr,
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
		gin.SetMode(gin.DebugMode)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}

	a := app.New(cfg)
	r := webui.NewRouter(a)

	log.Info().Str("addr", a.ListenAddr()).Bool("remote", a.RemoteEnabled()).Msg("serving job finder")
	if err := r.Run(a.ListenAddr()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
