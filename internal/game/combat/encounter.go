// Package combat drives turn-based encounters between a player and an enemy:
// each round processes status effects, lets both sides choose and use an
// ability (or fall back to a basic attack) and ticks cooldowns.
package combat

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/ability"
	"github.com/cory-johannsen/skirmish/internal/game/ai"
	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
)

// DefaultMaxRounds caps an encounter when Options.MaxRounds is unset.
const DefaultMaxRounds = 30

// basicAttackVariance is the spread of a basic attack: [-3, 3].
var basicAttackVariance = dice.MustParse("1d7-4")

// Outcome is how an encounter ended.
type Outcome int

const (
	// Ongoing means neither side has fallen and the cap is not reached.
	Ongoing Outcome = iota
	Victory
	Defeat
	// Stalemate means the round cap was reached with both sides standing.
	Stalemate
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	case Stalemate:
		return "stalemate"
	default:
		return "unknown"
	}
}

// Options configures an Encounter. Roller and Logger are required.
type Options struct {
	MaxRounds     int
	PlayerChooser Chooser
	EnemyChooser  Chooser
	Roller        *dice.Roller
	Logger        *zap.Logger
}

// Result summarizes a finished encounter.
type Result struct {
	EncounterID string
	Outcome     Outcome
	Rounds      int
	Exp         int
	Gold        int
	Drops       []*inventory.Item
	// Messages holds the reward narration: level-ups, loot.
	Messages []string
}

// Encounter is one fight between a player and an enemy. It is not safe for
// concurrent use; independent encounters may run in parallel.
type Encounter struct {
	ID string

	player        *character.Player
	enemy         *character.Enemy
	playerChooser Chooser
	enemyChooser  Chooser
	maxRounds     int
	round         int
	roller        *dice.Roller
	logger        *zap.Logger
}

// NewEncounter creates an Encounter with a fresh id.
//
// Precondition: player, enemy, opts.Roller and opts.Logger must be non-nil.
// Postcondition: Unset choosers default to RandomChooser for the player and
// the ai.Policy ladder for the enemy; MaxRounds <= 0 uses DefaultMaxRounds.
func NewEncounter(player *character.Player, enemy *character.Enemy, opts Options) *Encounter {
	if player == nil || enemy == nil {
		panic("combat.NewEncounter: player and enemy must not be nil")
	}
	if opts.Roller == nil || opts.Logger == nil {
		panic("combat.NewEncounter: roller and logger must not be nil")
	}
	if opts.MaxRounds <= 0 {
		opts.MaxRounds = DefaultMaxRounds
	}
	if opts.PlayerChooser == nil {
		opts.PlayerChooser = NewRandomChooser(opts.Roller)
	}
	if opts.EnemyChooser == nil {
		opts.EnemyChooser = FromPolicy(ai.NewPolicy(opts.Roller, opts.Logger))
	}
	id := uuid.New().String()
	return &Encounter{
		ID:            id,
		player:        player,
		enemy:         enemy,
		playerChooser: opts.PlayerChooser,
		enemyChooser:  opts.EnemyChooser,
		maxRounds:     opts.MaxRounds,
		roller:        opts.Roller,
		logger:        opts.Logger.With(zap.String("encounter", id)),
	}
}

// Player returns the player side.
func (e *Encounter) Player() *character.Player { return e.player }

// Enemy returns the enemy side.
func (e *Encounter) Enemy() *character.Enemy { return e.enemy }

// RoundsPlayed returns the number of completed rounds.
func (e *Encounter) RoundsPlayed() int { return e.round }

// Outcome reports the current state of the encounter.
//
// Postcondition: a fallen player is a Defeat even if the enemy fell too.
func (e *Encounter) Outcome() Outcome {
	switch {
	case !e.player.IsAlive():
		return Defeat
	case !e.enemy.IsAlive():
		return Victory
	case e.round >= e.maxRounds:
		return Stalemate
	default:
		return Ongoing
	}
}

// PlayRound plays one full round:
//  1. the player then the enemy process status effects;
//  2. the player then the enemy act, if alive and able;
//  3. both sides update cooldowns.
//
// Postcondition: RoundsPlayed is incremented by one.
func (e *Encounter) PlayRound() Round {
	e.round++
	r := Round{Number: e.round}

	for _, c := range []*character.Character{e.player.Character, e.enemy.Character} {
		for _, msg := range c.ProcessStatusEffects() {
			if msg != "" {
				r.add(c.Name(), EventStatus, msg)
			}
		}
	}

	e.takeTurn(&r, e.player.Character, e.enemy.Character, e.playerChooser)
	e.takeTurn(&r, e.enemy.Character, e.player.Character, e.enemyChooser)

	e.player.UpdateCooldowns()
	e.enemy.UpdateCooldowns()

	r.PlayerHP = e.player.HP()
	r.EnemyHP = e.enemy.HP()
	for _, ev := range r.Events {
		e.logger.Debug("combat: event",
			zap.Int("round", r.Number),
			zap.String("actor", ev.Actor),
			zap.Stringer("kind", ev.Kind),
			zap.String("message", ev.Message),
		)
	}
	return r
}

func (e *Encounter) takeTurn(r *Round, self, opponent *character.Character, chooser Chooser) {
	if !self.IsAlive() {
		return
	}
	if self.IsActionPrevented() {
		r.add(self.Name(), EventPrevented, fmt.Sprintf("%s is unable to act!", self.Name()))
		return
	}
	if !opponent.IsAlive() {
		return
	}

	chosen := chooser.Choose(self, opponent)
	if chosen == nil {
		damage := self.TotalAttack() + e.roller.Total(basicAttackVariance)
		dealt := opponent.TakeDamage(damage)
		r.addDamage(self.Name(), EventBasicAttack,
			fmt.Sprintf("%s attacks %s for %d damage!", self.Name(), opponent.Name(), dealt), dealt)
		return
	}

	target := opponent
	if chosen.Kind == ability.Buff {
		target = self
	}
	out := chosen.Use(self, target, e.roller)
	kind := EventAbility
	if !out.OK {
		kind = EventFailed
	}
	r.addDamage(self.Name(), kind, out.Message, out.Damage)
}

// Run plays rounds until one side falls or the round cap is reached. On
// Victory the player collects the enemy's experience, gold and drops.
//
// Postcondition: Result.Outcome is never Ongoing.
func (e *Encounter) Run() Result {
	for e.Outcome() == Ongoing {
		e.PlayRound()
	}
	res := Result{
		EncounterID: e.ID,
		Outcome:     e.Outcome(),
		Rounds:      e.round,
	}
	if res.Outcome == Victory {
		e.award(&res)
	}
	e.logger.Info("combat: encounter finished",
		zap.String("player", e.player.Name()),
		zap.String("enemy", e.enemy.Name()),
		zap.Stringer("outcome", res.Outcome),
		zap.Int("rounds", res.Rounds),
		zap.Int("exp", res.Exp),
		zap.Int("gold", res.Gold),
		zap.Int("drops", len(res.Drops)),
	)
	return res
}

func (e *Encounter) award(res *Result) {
	res.Exp = e.enemy.ExpReward()
	res.Gold = e.enemy.GoldReward()
	res.Messages = append(res.Messages, e.player.GainExperience(res.Exp, e.roller)...)
	e.player.AddGold(res.Gold)
	res.Messages = append(res.Messages,
		fmt.Sprintf("Gained %d EXP and %d gold!", res.Exp, res.Gold))
	res.Drops = e.enemy.Drops(e.roller)
	for _, item := range res.Drops {
		e.player.AddItem(item)
		res.Messages = append(res.Messages, fmt.Sprintf("Received %s.", item.Name))
	}
}
