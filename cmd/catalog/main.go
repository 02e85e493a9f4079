// Package main provides the catalog binary: it prints the loaded content
// (items, abilities, enemies at their default level and stocked shops).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/content"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/observability"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	section := flag.String("section", "all", "what to print: items, abilities, enemies, shops or all")
	seed := flag.Uint64("seed", 1, "seed for enemy rewards and shop stock rolls")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logging, "catalog")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	lib, err := content.Load(cfg.Content)
	if err != nil {
		logger.Fatal("loading content", zap.Error(err))
	}
	roller := dice.NewLoggedRoller(dice.NewSeededSource(*seed), logger)

	printers := map[string]func(*tabwriter.Writer){
		"items":     func(w *tabwriter.Writer) { printItems(w, lib) },
		"abilities": func(w *tabwriter.Writer) { printAbilities(w, lib) },
		"enemies":   func(w *tabwriter.Writer) { printEnemies(w, lib, roller, logger) },
		"shops":     func(w *tabwriter.Writer) { printShops(w, lib, roller, logger) },
	}
	order := []string{"items", "abilities", "enemies", "shops"}
	if *section != "all" {
		if _, ok := printers[*section]; !ok {
			log.Fatalf("unknown section %q", *section)
		}
		order = []string{*section}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range order {
		fmt.Fprintf(w, "=== %s ===\n", strings.ToUpper(name))
		printers[name](w)
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		logger.Fatal("writing catalog", zap.Error(err))
	}
}

func printItems(w *tabwriter.Writer, lib *content.Library) {
	fmt.Fprintln(w, "ID\tNAME\tKIND\tVALUE\tSTATS")
	for _, item := range lib.Items.All() {
		var stats []string
		for s, v := range item.Stats {
			stats = append(stats, fmt.Sprintf("%s%+d", s, v))
		}
		slices.Sort(stats)
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", item.ID, item.Name, item.Kind, item.Value, strings.Join(stats, " "))
	}
}

func printAbilities(w *tabwriter.Writer, lib *content.Library) {
	fmt.Fprintln(w, "ID\tNAME\tKIND\tPOWER\tMANA\tCOOLDOWN\tEFFECT")
	for _, id := range lib.Abilities.IDs() {
		a, err := lib.Abilities.New(id)
		if err != nil {
			continue
		}
		effect := "-"
		if a.Effect != nil {
			effect = fmt.Sprintf("%s %d/%dt", a.Effect.Type, a.Effect.Power, a.Effect.Duration)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n", id, a.Name, a.Kind, a.Power, a.ManaCost, a.Cooldown, effect)
	}
}

func printEnemies(w *tabwriter.Writer, lib *content.Library, roller *dice.Roller, logger *zap.Logger) {
	fmt.Fprintln(w, "ID\tNAME\tHP\tMANA\tATK\tDEF\tEXP\tGOLD\tABILITIES")
	for _, id := range lib.Bestiary.IDs() {
		e, err := lib.Bestiary.Spawn(id, 0, roller)
		if err != nil {
			logger.Error("spawning enemy", zap.String("id", id), zap.Error(err))
			continue
		}
		var names []string
		for _, a := range e.Abilities() {
			names = append(names, a.Name)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%s\n", id, e.Name(), e.MaxHP(), e.MaxMana(),
			e.BaseAttack(), e.BaseDefense(), e.ExpReward(), e.GoldReward(), strings.Join(names, ", "))
	}
}

func printShops(w *tabwriter.Writer, lib *content.Library, roller *dice.Roller, logger *zap.Logger) {
	for _, d := range lib.Shops {
		s, err := d.Build(lib.Items, roller)
		if err != nil {
			logger.Error("building shop", zap.String("id", d.ID), zap.Error(err))
			continue
		}
		fmt.Fprintf(w, "%s (buy x%.2f, sell x%.2f)\n", s.Name, s.BuyMultiplier, s.SellMultiplier)
		for _, line := range s.List() {
			fmt.Fprintf(w, "\t%s\n", line)
		}
	}
}
