// Package main is the entry point for pitd, a terminal viewer for generated
// dungeons and their field of view.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/pitd/internal/game"
	"github.com/samdwyer/pitd/internal/logger"
	"github.com/samdwyer/pitd/internal/telemetry"
	"github.com/samdwyer/pitd/internal/ui"
)

func main() {
	// Load .env file for local development
	envErr := godotenv.Load()

	closer, err := logger.Init()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()
	log := logger.Component("main")
	if envErr != nil {
		// Not fatal - env vars might be set directly
		log.WithError(envErr).Debug(".env file not loaded.")
	}

	cfg, err := game.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	seed := flag.String("seed", cfg.Seed, "seed string; empty draws a random one")
	mapPath := flag.String("map", cfg.MapPath, "load a map file instead of generating")
	dump := flag.Bool("dump", false, "print the map and field of view instead of opening the viewer")
	scatter := flag.Bool("scatter", cfg.Scatter, "use the scatter generator instead of the partition tree")
	flag.Parse()

	cfg.Seed = *seed
	cfg.MapPath = *mapPath
	cfg.Scatter = *scatter

	// The viewer owns the terminal; keep log lines off it unless they go to a file.
	if !*dump && os.Getenv("LOG_FILE") == "" {
		logger.Log.SetOutput(io.Discard)
	}

	ctx := context.Background()

	if telemetry.Enabled() {
		setupOTelEnv()
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.WithError(err).Warn("Telemetry setup failed; running without tracing.")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.WithError(err).Error("Error shutting down telemetry.")
				}
			}()
		}
	}

	g, err := game.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}
	if err := g.Init(ctx); err != nil {
		log.Fatalf("Failed to build map: %v", err)
	}

	if *dump {
		if err := ui.Dump(os.Stdout, g.View()); err != nil {
			log.Fatalf("Failed to print map: %v", err)
		}
		return
	}

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

// setupOTelEnv points the OTLP exporter at Honeycomb when an API key is set
// and no endpoint was configured explicitly.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_PITD_API_KEY")
	if apiKey == "" || os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		return
	}
	dataset := os.Getenv("HONEYCOMB_PITD_DATASET")
	if dataset == "" {
		dataset = "pitd" // default dataset name
	}
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
