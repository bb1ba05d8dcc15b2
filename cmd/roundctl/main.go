package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"bacbo-live-client/internal/config"
	"bacbo-live-client/internal/console"
	"bacbo-live-client/internal/display"
	"bacbo-live-client/internal/models"
	"bacbo-live-client/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	result, err := parseFlags(cfg, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("Invalid flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var tokens *services.TokenService
	if cfg.JWTSecret != "" {
		tokens = services.NewTokenService(cfg.JWTSecret, services.DefaultTokenTTL)
	}
	client := services.NewRoundClient(cfg, tokens)

	targets := map[string]display.Multi{}
	for id, line := range display.NewLineTargets(os.Stdout) {
		targets[id] = display.Multi{display.NewLabel(), line}
	}

	history := services.NewHistory(services.MaxBoardRounds)
	recorders := []services.RoundRecorder{history}

	var redisService *services.RedisService
	if cfg.RedisURL != "" {
		redisService, err = services.NewRedisService(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisService.Close()

		for id, t := range redisService.BoardTargets(cfg.BoardName) {
			targets[id] = append(targets[id], t)
		}
		recorders = append(recorders, redisService.Recorder(cfg.BoardName))
	}

	if cfg.DisplayWSURL != "" {
		relay, err := display.DialRelay(cfg.DisplayWSURL, nil)
		if err != nil {
			log.Fatalf("Failed to connect display: %v", err)
		}
		defer relay.Close()

		for id, t := range relay.Targets() {
			targets[id] = append(targets[id], t)
		}
	}

	panel, err := display.NewPanel(
		targets[display.ElementSignal],
		targets[display.ElementConfidence],
		targets[display.ElementGreens],
		targets[display.ElementReds],
	)
	if err != nil {
		log.Fatalf("Failed to build panel: %v", err)
	}

	submitter := services.NewSubmitter(client, panel, recorders...)

	if result != "" {
		if err := submitter.Submit(ctx, models.ParseResult(result)); err != nil {
			log.Fatalf("Round failed: %v", err)
		}
		return
	}

	c := console.New(submitter, history)
	c.BaseURL = cfg.BaseURL
	if redisService != nil {
		c.Board = redisService
		c.BoardName = cfg.BoardName
	}

	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Console stopped: %v", err)
	}
}

func parseFlags(cfg *config.Config, args []string) (string, error) {
	fs := flag.NewFlagSet("roundctl", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: roundctl [flags]")
		fs.PrintDefaults()
	}

	var result string
	fs.StringVar(&result, "result", "", "Submit one result and exit")
	fs.StringVar(&cfg.BaseURL, "base", cfg.BaseURL, "Analyzer base URL")
	fs.StringVar(&cfg.RoundPath, "path", cfg.RoundPath, "Round endpoint path")
	fs.BoolVar(&cfg.RawQuery, "raw", cfg.RawQuery, "Send the result unescaped")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Request timeout (0 = none)")
	fs.StringVar(&cfg.BoardName, "board", cfg.BoardName, "Redis board name")
	fs.StringVar(&cfg.DisplayWSURL, "display", cfg.DisplayWSURL, "Websocket display URL")

	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	return result, nil
}
