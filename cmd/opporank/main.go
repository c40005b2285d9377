// Copyright 2026 Opporank Authors
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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/opporank/opporank"
	"github.com/opporank/opporank/advisory"
	"github.com/opporank/opporank/build"
	"github.com/opporank/opporank/core"
	"github.com/urfave/cli/v2"
)

func main() {
	// Load .env if present; flags and config still win.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "opporank",
		Usage: "Opportunity recommendation engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				Value:   "opporank.yaml",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "seed",
				Usage:     "Load a catalog CSV into the posting database",
				ArgsUsage: "<catalog.csv>",
				Action:    seedCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "ignore-header",
						Usage: "Skip the header row and use the configured column order instead",
					},
				},
			},
			{
				Name:   "build",
				Usage:  "Embed the catalog and write the index artifacts",
				Action: buildCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N postings",
						Value: 100,
					},
				},
			},
			{
				Name:   "recommend",
				Usage:  "Rank postings for a skill/location profile",
				Action: recommendCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "skills",
						Aliases:  []string{"s"},
						Usage:    "Comma-separated skill tokens",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "interests",
						Aliases: []string{"i"},
						Usage:   "Comma-separated interest tokens",
					},
					&cli.StringFlag{
						Name:  "location",
						Usage: "Preferred location ('any' matches everything)",
						Value: "any",
					},
					&cli.BoolFlag{
						Name:  "work-from-home",
						Usage: "Only match remote postings",
					},
					&cli.BoolFlag{
						Name:  "advise",
						Usage: "Print a learning resource for each missing skill",
					},
				},
			},
			{
				Name:      "advise",
				Usage:     "Look up learning resources for skills",
				ArgsUsage: "<skill> [skill...]",
				Action:    adviseCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openEngine(c *cli.Context) (*opporank.Engine, error) {
	config, err := opporank.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	engine, err := opporank.NewEngine(config)
	if err != nil {
		return nil, fmt.Errorf("failed to open engine: %w", err)
	}
	return engine, nil
}

func seedCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one catalog file argument")
	}

	config, err := opporank.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if c.Bool("ignore-header") {
		config.Catalog.TrustHeader = false
		if len(config.Catalog.ColumnOrder) == 0 {
			config.Catalog.ColumnOrder = []string{"id", "title", "location", "skills"}
		}
	}

	engine, err := opporank.NewEngine(config)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	n, err := engine.SeedFromFile(c.Context, c.Args().First())
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Seeded %d postings from %s\n", n, c.Args().First())
	return nil
}

func buildCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	count, err := engine.PostingRepository().Count(c.Context)
	if err != nil {
		return err
	}
	progress := build.NewProgressTracker(os.Stderr, count, c.Int("report-interval"))

	if err := engine.BuildIndex(c.Context, build.WithProgress(progress)); err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Built index over %d postings in %s\n", count, progress.Elapsed().Round(time.Millisecond))
	return nil
}

func recommendCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	recommender, err := engine.OpenRecommender(c.Context)
	if err != nil {
		return fmt.Errorf("failed to open recommender: %w", err)
	}

	profile := core.Profile{
		Skills:             core.ParseSkills(c.String("skills")),
		Interests:          core.ParseSkills(c.String("interests")),
		LocationPreference: c.String("location"),
		WorkFromHomeOnly:   c.Bool("work-from-home"),
	}

	result, err := recommender.Recommend(c.Context, profile)
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	fmt.Printf("Tier: %s\n", result.Tier)
	if len(result.Recommendations) == 0 {
		fmt.Println("No postings to rank.")
		return nil
	}

	for i, rec := range result.Recommendations {
		fmt.Printf("%d. %s (%s, %s)\n", i+1, rec.Title, rec.PostingID, rec.Location)
		fmt.Printf("   score %.3f (semantic %.3f, keyword %.3f)\n",
			rec.FinalScore, rec.SemanticScore, rec.KeywordScore)
		if len(rec.MatchedSkills) > 0 {
			fmt.Printf("   matched: %s\n", strings.Join(rec.MatchedSkills, ", "))
		}
		if len(rec.MissingSkills) > 0 {
			fmt.Printf("   missing: %s\n", strings.Join(rec.MissingSkills, ", "))
			if c.Bool("advise") {
				for _, r := range advisory.ForSkills(rec.MissingSkills) {
					fmt.Printf("   learn %s: %s\n", r.Skill, r.URL)
				}
			}
		}
	}
	return nil
}

func adviseCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("expected at least one skill argument")
	}
	for _, r := range advisory.ForSkills(c.Args().Slice()) {
		fmt.Printf("%s: %s\n", r.Skill, r.URL)
	}
	return nil
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
