// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/matchit"
	"github.com/poiesic/matchit/ai"
	"github.com/poiesic/matchit/ai/hf"
	"github.com/poiesic/matchit/core"
	"github.com/poiesic/matchit/engine"
	"github.com/poiesic/matchit/geo"
)

func main() {
	app := &cli.App{
		Name:  "matchit",
		Usage: "Semantic catalog matching assistant",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ask",
				Usage:     "Answer a single prompt against the catalog",
				ArgsUsage: "<prompt>",
				Action:    askCommand,
				Flags:     serviceFlags(),
			},
			{
				Name:   "chat",
				Usage:  "Interactive prompt loop against the catalog",
				Action: chatCommand,
				Flags:  serviceFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serviceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB catalog directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "chat-host",
			Usage: "Chat service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "chat-model",
			Usage: "Chat model name",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "embedding-backend",
			Usage: "Embedding backend (openai, inference)",
			Value: "openai",
		},
		&cli.StringFlag{
			Name:    "inference-token",
			Usage:   "Bearer token for the inference embedding backend",
			EnvVars: []string{"MATCHIT_INFERENCE_TOKEN"},
		},
		&cli.Float64Flag{
			Name:  "origin-lat",
			Usage: "Latitude of the distance reference point",
			Value: 13.041820,
		},
		&cli.Float64Flag{
			Name:  "origin-lon",
			Usage: "Longitude of the distance reference point",
			Value: 77.528481,
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Per-request timeout for AI services",
			Value: 30 * time.Second,
		},
	}
}

func newService(c *cli.Context) (*matchit.Service, error) {
	aiConfig := ai.NewConfig(
		ai.WithChatHost(c.String("chat-host")),
		ai.WithChatModel(c.String("chat-model")),
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithRequestTimeout(c.Duration("timeout")),
	)

	opts := []matchit.ServiceOption{
		matchit.WithAIConfig(aiConfig),
		matchit.WithOrigin(geo.Origin{
			Lat: c.Float64("origin-lat"),
			Lon: c.Float64("origin-lon"),
		}),
		matchit.WithPolicy(engine.DefaultPolicy()),
	}

	switch backend := c.String("embedding-backend"); backend {
	case "openai":
		// Provider default
	case "inference":
		embedder, err := hf.NewEmbedder(
			c.String("embedding-host"),
			hf.WithToken(c.String("inference-token")),
			hf.WithTimeout(c.Duration("timeout")),
		)
		if err != nil {
			return nil, err
		}
		opts = append(opts, matchit.WithEmbedderService(embedder))
	default:
		return nil, fmt.Errorf("unknown embedding backend %q: must be openai or inference", backend)
	}

	return matchit.NewService(c.String("db"), opts...)
}

func askCommand(c *cli.Context) error {
	prompt := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if prompt == "" {
		return fmt.Errorf("usage: matchit ask <prompt>")
	}

	service, err := newService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	bot, err := service.NewAssistant()
	if err != nil {
		return err
	}

	printResult(bot.Handle(c.Context, prompt))
	return nil
}

func chatCommand(c *cli.Context) error {
	service, err := newService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	bot, err := service.NewAssistant()
	if err != nil {
		return err
	}

	fmt.Println("Ask about items, shops, services, events or jobs. Empty line quits.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		prompt := strings.TrimSpace(scanner.Text())
		if prompt == "" {
			break
		}
		printResult(bot.Handle(context.Background(), prompt))
	}
	return scanner.Err()
}

func printResult(result *core.MatchResult) {
	fmt.Println(result.Message)
	for i, match := range result.Items {
		line := fmt.Sprintf("%d: [%s] %s (%.3f)", i+1, match.Collection, match.Item.Attributes.Text(), match.AdjustedSimilarity)
		if match.Collection.Geo() && match.Item.HasLocation {
			line += fmt.Sprintf(" %.2f km", match.DistanceKm)
		}
		fmt.Println(line)
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
