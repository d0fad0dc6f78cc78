package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/mixport/mixport/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	_ = godotenv.Load()
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}
	config.ApplyEnv()

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "mixport",
		Usage:    "Convert Spotify playlists to markdown and M3U files",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
