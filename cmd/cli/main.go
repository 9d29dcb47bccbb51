package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/moviehub-app/moviehub/internal/buildinfo"
	"github.com/moviehub-app/moviehub/internal/cli"
	"github.com/moviehub-app/moviehub/internal/config"
	"github.com/moviehub-app/moviehub/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	// Missing .env is fine, values may come from the environment.
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
