package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/ability"
	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
	"github.com/cory-johannsen/skirmish/internal/game/status"
)

// fixedSrc returns val for every Intn call, clamped to n-1.
type fixedSrc struct{ val int }

func (f fixedSrc) Intn(n int) int {
	if f.val >= n {
		return n - 1
	}
	return f.val
}

// neutralRoller makes the basic attack spread (1d7-4) roll exactly 0 and
// every chance check succeed.
func neutralRoller() *dice.Roller {
	return dice.NewLoggedRoller(fixedSrc{val: 3}, zap.NewNop())
}

func newEncounter(p *character.Player, e *character.Enemy, opts combat.Options) *combat.Encounter {
	if opts.Roller == nil {
		opts.Roller = neutralRoller()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return combat.NewEncounter(p, e, opts)
}

func TestNewEncounter_AssignsID(t *testing.T) {
	p := character.NewPlayer("Hero", character.DefaultStats())
	e := character.NewEnemy("Goblin", character.DefaultEnemyStats(), character.DefaultRewards())
	a := newEncounter(p, e, combat.Options{})
	b := newEncounter(p, e, combat.Options{})
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, combat.Ongoing, a.Outcome())
}

func TestNewEncounter_PanicsWithoutRoller(t *testing.T) {
	p := character.NewPlayer("Hero", character.DefaultStats())
	e := character.NewEnemy("Goblin", character.DefaultEnemyStats(), character.DefaultRewards())
	assert.Panics(t, func() {
		combat.NewEncounter(p, e, combat.Options{Logger: zap.NewNop()})
	})
}

func TestPlayRound_BasicAttacksWhenNoAbilities(t *testing.T) {
	p := character.NewPlayer("Hero", character.DefaultStats())
	e := character.NewEnemy("Goblin", character.DefaultEnemyStats(), character.DefaultRewards())
	enc := newEncounter(p, e, combat.Options{})

	r := enc.PlayRound()
	require.Len(t, r.Events, 2)
	// 10 attack vs 3 defense; 8 attack vs 5 defense.
	assert.Equal(t, "Hero attacks Goblin for 7 damage!", r.Events[0].Message)
	assert.Equal(t, combat.EventBasicAttack, r.Events[0].Kind)
	assert.Equal(t, 7, r.Events[0].Damage)
	assert.Equal(t, "Goblin attacks Hero for 3 damage!", r.Events[1].Message)
	assert.Equal(t, 43, r.EnemyHP)
	assert.Equal(t, 97, r.PlayerHP)
	assert.Equal(t, 1, enc.RoundsPlayed())
}

func TestPlayRound_StatusEffectsProcessedFirst(t *testing.T) {
	p := character.NewPlayer("Hero", character.DefaultStats())
	e := character.NewEnemy("Goblin", character.DefaultEnemyStats(), character.DefaultRewards())
	e.AddStatusEffect(status.New("Daze", status.Stun, 2, 0, ""))
	enc := newEncounter(p, e, combat.Options{})

	r := enc.PlayRound()
	require.Len(t, r.Events, 3)
	assert.Equal(t, combat.EventStatus, r.Events[0].Kind)
	assert.Equal(t, "Goblin is stunned and cannot act!", r.Events[0].Message)
	assert.Equal(t, combat.EventBasicAttack, r.Events[1].Kind)
	assert.Equal(t, combat.Event{Actor: "Goblin", Kind: combat.EventPrevented, Message: "Goblin is unable to act!"}, r.Events[2])
	assert.Equal(t, 100, r.PlayerHP)
}

func TestPlayRound_BuffTargetsCaster(t *testing.T) {
	p := character.NewPlayer("Hero", character.DefaultStats())
	cry, err := ability.NewInflicting("Battle Cry", ability.Buff, 0, 0, status.StrengthBoost, 3, 5, 2, "")
	require.NoError(t, err)
	p.AddAbility(cry)
	e := character.NewEnemy("Goblin", character.DefaultEnemyStats(), character.DefaultRewards())
	enc := newEncounter(p, e, combat.Options{})

	r := enc.PlayRound()
	assert.Equal(t, "Hero gains Battle Cry Effect!", r.Events[0].Message)
	assert.Equal(t, combat.EventAbility, r.Events[0].Kind)
	assert.True(t, p.HasStatusEffect(status.StrengthBoost))
	assert.False(t, e.HasStatusEffect(status.StrengthBoost))
	// Cooldown 2 was ticked once at the end of the round.
	assert.Equal(t, 1, cry.CurrentCooldown())
}

func TestPlayRound_DeadEnemyDoesNotAct(t *testing.T) {
	p := character.NewPlayer("Hero", character.Stats{HP: 100, Mana: 50, Attack: 60, Defense: 5})
	e := character.NewEnemy("Goblin", character.DefaultEnemyStats(), character.DefaultRewards())
	enc := newEncounter(p, e, combat.Options{})

	r := enc.PlayRound()
	require.Len(t, r.Events, 1)
	assert.Equal(t, 0, r.EnemyHP)
	assert.Equal(t, combat.Victory, enc.Outcome())
}

func TestPlayRound_EnemyUsesPolicyByDefault(t *testing.T) {
	p := character.NewPlayer("Hero", character.DefaultStats())
	e := character.NewEnemy("Goblin", character.DefaultEnemyStats(), character.DefaultRewards())
	e.AddAbility(ability.MustNew("Club", ability.Attack, 5, 0, 0, "", nil))
	enc := newEncounter(p, e, combat.Options{})

	r := enc.PlayRound()
	require.Len(t, r.Events, 2)
	assert.Equal(t, combat.EventAbility, r.Events[1].Kind)
	assert.Contains(t, r.Events[1].Message, "Goblin attacks Hero with Club")
}

func TestRun_VictoryAwardsRewards(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := character.NewPlayer("Hero", character.Stats{HP: 100, Mana: 50, Attack: 60, Defense: 5})
	e := character.NewEnemy("Goblin", character.DefaultEnemyStats(), character.Rewards{Level: 1, Exp: 25, Gold: 10})
	ear := inventory.NewHealthPotion(25)
	require.NoError(t, e.AddDrop(ear, 1.0))
	enc := newEncounter(p, e, combat.Options{Logger: zap.New(core)})

	res := enc.Run()
	assert.Equal(t, combat.Victory, res.Outcome)
	assert.Equal(t, enc.ID, res.EncounterID)
	assert.Equal(t, 1, res.Rounds)
	assert.Equal(t, 25, res.Exp)
	assert.Equal(t, 10, res.Gold)
	assert.Equal(t, 25, p.Experience())
	assert.Equal(t, 10, p.Gold())
	assert.Equal(t, []*inventory.Item{ear}, res.Drops)
	assert.True(t, p.HasItem(ear))
	assert.Contains(t, res.Messages, "Gained 25 EXP and 10 gold!")
	assert.Equal(t, 1, logs.FilterMessage("combat: encounter finished").Len())
}

func TestRun_DefeatAwardsNothing(t *testing.T) {
	p := character.NewPlayer("Hero", character.Stats{HP: 10, Mana: 0, Attack: 1, Defense: 0})
	e := character.NewEnemy("Ogre", character.Stats{HP: 500, Mana: 0, Attack: 30, Defense: 50}, character.DefaultRewards())
	enc := newEncounter(p, e, combat.Options{})

	res := enc.Run()
	assert.Equal(t, combat.Defeat, res.Outcome)
	assert.Zero(t, res.Exp)
	assert.Zero(t, p.Gold())
	assert.Empty(t, res.Drops)
}

func TestRun_StalemateAtRoundCap(t *testing.T) {
	p := character.NewPlayer("Hero", character.Stats{HP: 100, Mana: 0, Attack: 1, Defense: 1000})
	e := character.NewEnemy("Turtle", character.Stats{HP: 50, Mana: 0, Attack: 1, Defense: 1000}, character.DefaultRewards())
	enc := newEncounter(p, e, combat.Options{MaxRounds: 3})

	res := enc.Run()
	assert.Equal(t, combat.Stalemate, res.Outcome)
	assert.Equal(t, 3, res.Rounds)
	// Chip damage floor: one point per hit.
	assert.Equal(t, 97, p.HP())
	assert.Equal(t, 47, e.HP())
}

func TestRun_Property_TerminatesWithinBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		maxRounds := rapid.IntRange(1, 40).Draw(rt, "maxRounds")
		roller := dice.NewLoggedRoller(dice.NewSeededSource(seed), zap.NewNop())

		p := character.NewPlayer("Hero", character.DefaultStats())
		for _, a := range []*ability.Ability{
			ability.MustNew("Slash", ability.Attack, 15, 0, 0, "", nil),
			ability.MustNew("Heal", ability.Heal, 25, 15, 2, "", nil),
		} {
			p.AddAbility(a)
		}
		dart, err := ability.NewInflicting("Poison Dart", ability.Attack, 8, 10, status.Poison, 3, 5, 3, "")
		if err != nil {
			rt.Fatal(err)
		}
		p.AddAbility(dart)

		e := character.NewEnemy("Orc", character.Stats{HP: 90, Mana: 30, Attack: 12, Defense: 4}, character.DefaultRewards())
		stun, err := ability.NewInflicting("Stunning Blow", ability.Attack, 10, 15, status.Stun, 1, 0, 4, "")
		if err != nil {
			rt.Fatal(err)
		}
		e.AddAbility(stun)

		enc := combat.NewEncounter(p, e, combat.Options{MaxRounds: maxRounds, Roller: roller, Logger: zap.NewNop()})
		res := enc.Run()
		if res.Outcome == combat.Ongoing {
			rt.Fatalf("Run returned Ongoing")
		}
		if res.Rounds < 1 || res.Rounds > maxRounds {
			rt.Fatalf("rounds %d outside [1, %d]", res.Rounds, maxRounds)
		}
		for _, c := range []*character.Character{p.Character, e.Character} {
			if c.HP() < 0 || c.HP() > c.MaxHP() || c.Mana() < 0 || c.Mana() > c.MaxMana() {
				rt.Fatalf("%s out of bounds: hp %d/%d mana %d/%d", c.Name(), c.HP(), c.MaxHP(), c.Mana(), c.MaxMana())
			}
		}
	})
}
