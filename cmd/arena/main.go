// Package main provides the arena binary: it plays a batch of seeded
// encounters between the configured player and a bestiary enemy.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/arena"
	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/content"
	"github.com/cory-johannsen/skirmish/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	verbose := flag.Bool("v", false, "print the round-by-round log of every encounter")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, "arena")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	loadStart := time.Now()
	lib, err := content.Load(cfg.Content)
	if err != nil {
		logger.Fatal("loading content", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Int("items", lib.Items.Len()),
		zap.Int("abilities", len(lib.Abilities.IDs())),
		zap.Int("enemies", len(lib.Bestiary.IDs())),
		zap.Duration("elapsed", time.Since(loadStart)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := arena.NewRunner(lib, cfg.Arena, cfg.Content.Tactics, logger)
	sum, err := runner.Run(ctx)
	if err != nil {
		logger.Fatal("arena run failed", zap.Error(err))
	}

	for _, rep := range sum.Reports {
		res := rep.Result
		fmt.Printf("#%d seed=%d %s vs %s: %s in %d rounds",
			rep.Index, rep.Seed, rep.Player, rep.Enemy, res.Outcome, res.Rounds)
		if len(res.Drops) > 0 {
			fmt.Printf(" (%d drops)", len(res.Drops))
		}
		fmt.Println()
		if *verbose {
			for _, line := range rep.Log {
				fmt.Println("  " + line)
			}
		}
	}
	fmt.Printf("run %s: %d victories, %d defeats, %d stalemates\n",
		sum.RunID, sum.Victories, sum.Defeats, sum.Stalemates)

	logger.Info("arena finished", zap.Duration("elapsed", time.Since(start)))
}
