// Package arena runs batches of independent, seeded encounters between a
// configured player and a bestiary enemy and summarizes the results.
package arena

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/content"
	"github.com/cory-johannsen/skirmish/internal/game/ai"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/scripting"
)

// tacticSet is the script set name every encounter VM loads its tactics under.
const tacticSet = "tactics"

// Report is the result of one encounter.
type Report struct {
	Index  int
	Seed   uint64
	Player string
	Enemy  string
	Result combat.Result
	// Log is the narration of every round followed by the reward messages.
	Log []string
}

// Summary aggregates a batch.
type Summary struct {
	RunID      string
	Reports    []Report
	Victories  int
	Defeats    int
	Stalemates int
}

// Runner plays encounters from a Library according to an ArenaConfig.
type Runner struct {
	lib        *content.Library
	cfg        config.ArenaConfig
	tacticsDir string
	logger     *zap.Logger
	// seeds draws the base seed when cfg.Seed is zero.
	seeds dice.Source
}

// NewRunner creates a Runner.
//
// Precondition: lib and logger must be non-nil; cfg must have passed validation.
// tacticsDir is required only when cfg.Tactic is "script".
func NewRunner(lib *content.Library, cfg config.ArenaConfig, tacticsDir string, logger *zap.Logger) *Runner {
	return &Runner{
		lib:        lib,
		cfg:        cfg,
		tacticsDir: tacticsDir,
		logger:     logger,
		seeds:      dice.NewCryptoSource(),
	}
}

// Run plays cfg.Encounters encounters with at most cfg.Workers in flight.
// Encounter i is seeded with base+i, so a fixed seed reproduces the batch.
//
// Postcondition: Summary.Reports is ordered by index; the first setup error
// cancels the batch and is returned.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	base := r.cfg.Seed
	if base == 0 {
		base = uint64(r.seeds.Intn(1 << 30))
	}
	sum := Summary{RunID: uuid.New().String(), Reports: make([]Report, r.cfg.Encounters)}
	logger := r.logger.With(zap.String("run", sum.RunID))
	logger.Info("arena: run starting",
		zap.Int("encounters", r.cfg.Encounters),
		zap.Int("workers", r.cfg.Workers),
		zap.Uint64("seed", base),
		zap.String("enemy", r.cfg.Enemy),
		zap.String("tactic", r.cfg.Tactic),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	var mu sync.Mutex
	for i := 0; i < r.cfg.Encounters; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rep, err := r.play(i, base+uint64(i), logger)
			if err != nil {
				return fmt.Errorf("encounter %d: %w", i, err)
			}
			mu.Lock()
			sum.Reports[i] = rep
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	for _, rep := range sum.Reports {
		switch rep.Result.Outcome {
		case combat.Victory:
			sum.Victories++
		case combat.Defeat:
			sum.Defeats++
		default:
			sum.Stalemates++
		}
	}
	logger.Info("arena: run finished",
		zap.Int("victories", sum.Victories),
		zap.Int("defeats", sum.Defeats),
		zap.Int("stalemates", sum.Stalemates),
	)
	return sum, nil
}

// play runs one encounter with its own source, characters and Lua VM.
func (r *Runner) play(index int, seed uint64, logger *zap.Logger) (Report, error) {
	logger = logger.With(zap.Int("index", index), zap.Uint64("seed", seed))
	roller := dice.NewLoggedRoller(dice.NewSeededSource(seed), logger)

	player, err := r.lib.NewPlayer(r.cfg.Player)
	if err != nil {
		return Report{}, err
	}
	enemy, err := r.lib.Bestiary.Spawn(r.cfg.Enemy, r.cfg.EnemyLevel, roller)
	if err != nil {
		return Report{}, err
	}

	chooser, closeFn, err := r.playerChooser(roller, logger)
	if err != nil {
		return Report{}, err
	}
	defer closeFn()

	enc := combat.NewEncounter(player, enemy, combat.Options{
		MaxRounds:     r.cfg.MaxRounds,
		PlayerChooser: chooser,
		Roller:        roller,
		Logger:        logger,
	})
	rep := Report{Index: index, Seed: seed, Player: player.Name(), Enemy: enemy.Name()}
	for enc.Outcome() == combat.Ongoing {
		round := enc.PlayRound()
		rep.Log = append(rep.Log, fmt.Sprintf("--- Round %d ---", round.Number))
		rep.Log = append(rep.Log, round.Messages()...)
		rep.Log = append(rep.Log, fmt.Sprintf("%s HP: %d/%d, %s HP: %d/%d",
			player.Name(), round.PlayerHP, player.MaxHP(),
			enemy.Name(), round.EnemyHP, enemy.MaxHP()))
	}
	rep.Result = enc.Run()
	rep.Log = append(rep.Log, rep.Result.Messages...)
	return rep, nil
}

func (r *Runner) playerChooser(roller *dice.Roller, logger *zap.Logger) (combat.Chooser, func(), error) {
	noop := func() {}
	switch r.cfg.Tactic {
	case config.TacticPolicy:
		return combat.FromPolicy(ai.NewPolicy(roller, logger)), noop, nil
	case config.TacticScript:
		mgr := scripting.NewManager(roller, logger)
		if err := mgr.Load(tacticSet, r.tacticsDir, r.cfg.ScriptLimit); err != nil {
			return nil, noop, err
		}
		fallback := combat.NewRandomChooser(roller)
		return combat.NewScriptChooser(mgr, tacticSet, fallback, logger), mgr.Close, nil
	default:
		return combat.NewRandomChooser(roller), noop, nil
	}
}
