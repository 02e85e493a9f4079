package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/ability"
	"github.com/cory-johannsen/skirmish/internal/game/ai"
	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/status"
)

// fixedSrc returns val for every Intn call.
type fixedSrc struct{ val int }

func (f fixedSrc) Intn(_ int) int { return f.val }

func newPolicy() *ai.Policy {
	return ai.NewPolicy(dice.NewLoggedRoller(fixedSrc{val: 0}, zap.NewNop()), zap.NewNop())
}

func attack(name string, power int) *ability.Ability {
	return ability.MustNew(name, ability.Attack, power, 0, 0, "", nil)
}

func inflicting(name string, typ status.Type) *ability.Ability {
	a, err := ability.NewInflicting(name, ability.Attack, 10, 0, typ, 2, 3, 0, "")
	if err != nil {
		panic(err)
	}
	return a
}

func buff(name string, typ status.Type) *ability.Ability {
	a, err := ability.NewInflicting(name, ability.Buff, 0, 0, typ, 3, 5, 0, "")
	if err != nil {
		panic(err)
	}
	return a
}

func fighters() (*character.Character, *character.Character) {
	return character.New("Orc", character.DefaultStats()), character.New("Hero", character.DefaultStats())
}

func TestChoose_NothingUsable(t *testing.T) {
	self, target := fighters()
	self.AddAbility(ability.MustNew("Meteor", ability.Attack, 99, 500, 0, "", nil))
	d := newPolicy().Choose(self, target)
	assert.Nil(t, d.Ability)
	assert.Equal(t, ai.TierNone, d.Tier)
}

func TestChoose_HealPreemptsAttack(t *testing.T) {
	self, target := fighters()
	self.AddAbility(attack("Claw", 30))
	heal := self.AddAbility(ability.MustNew("Heal", ability.Heal, 30, 8, 0, "", nil))
	self.TakeDamage(85) // 80 after defense: hp 20 == 0.2 * maxHP

	d := newPolicy().Choose(self, target)
	assert.Same(t, heal, d.Ability)
	assert.Equal(t, ai.TierHeal, d.Tier)
}

func TestChoose_NoHealAtQuarterHP(t *testing.T) {
	self, target := fighters()
	self.AddAbility(ability.MustNew("Heal", ability.Heal, 30, 8, 0, "", nil))
	claw := self.AddAbility(attack("Claw", 30))
	self.TakeDamage(80) // hp 25, not below a quarter

	d := newPolicy().Choose(self, target)
	assert.Same(t, claw, d.Ability)
	assert.Equal(t, ai.TierHeavyAttack, d.Tier)
}

func TestChoose_BuffWhenUnbuffed(t *testing.T) {
	self, target := fighters()
	self.AddAbility(inflicting("Poison Dart", status.Poison))
	rage := self.AddAbility(buff("Rage", status.StrengthBoost))

	d := newPolicy().Choose(self, target)
	assert.Same(t, rage, d.Ability)
	assert.Equal(t, ai.TierBuff, d.Tier)

	self.AddStatusEffect(status.New("Renewal", status.Regeneration, 2, 1, ""))
	d = newPolicy().Choose(self, target)
	assert.Equal(t, ai.TierDamageOverTime, d.Tier)
}

func TestChoose_SpeedBoostCountsAsBuffed(t *testing.T) {
	self, target := fighters()
	self.AddAbility(buff("Rage", status.StrengthBoost))
	self.AddStatusEffect(status.New("Haste", status.SpeedBoost, 2, 0, ""))

	d := newPolicy().Choose(self, target)
	assert.Equal(t, ai.TierFallback, d.Tier)
}

func TestChoose_DebuffTiersInOrder(t *testing.T) {
	self, target := fighters()
	self.AddAbility(inflicting("Curse", status.Weakness))
	self.AddAbility(inflicting("Ice Shard", status.Freeze))
	dart := self.AddAbility(inflicting("Poison Dart", status.Poison))
	p := newPolicy()

	d := p.Choose(self, target)
	assert.Same(t, dart, d.Ability)
	assert.Equal(t, ai.TierDamageOverTime, d.Tier)

	target.AddStatusEffect(status.New("Scorch", status.Burn, 3, 1, ""))
	d = p.Choose(self, target)
	assert.Equal(t, "Ice Shard", d.Ability.Name)
	assert.Equal(t, ai.TierCrowdControl, d.Tier)

	target.AddStatusEffect(status.New("Bash", status.Stun, 3, 0, ""))
	d = p.Choose(self, target)
	assert.Equal(t, "Curse", d.Ability.Name)
	assert.Equal(t, ai.TierStatDebuff, d.Tier)

	target.AddStatusEffect(status.New("Hex", status.Vulnerability, 3, 1, ""))
	d = p.Choose(self, target)
	assert.Equal(t, ai.TierAttack, d.Tier)
}

func TestChoose_HeavyThenAnyAttack(t *testing.T) {
	self, target := fighters()
	self.AddAbility(attack("Jab", 5))
	self.AddAbility(attack("Smash", 20))

	d := newPolicy().Choose(self, target)
	assert.Equal(t, "Smash", d.Ability.Name)
	assert.Equal(t, ai.TierHeavyAttack, d.Tier)
}

func TestChoose_FallbackToNonAttack(t *testing.T) {
	self, target := fighters()
	hex, err := ability.NewInflicting("Hex", ability.Debuff, 0, 0, status.Weakness, 2, 2, 0, "")
	require.NoError(t, err)
	self.AddAbility(hex)
	target.AddStatusEffect(status.New("Sap", status.Weakness, 3, 1, ""))

	d := newPolicy().Choose(self, target)
	assert.Same(t, hex, d.Ability)
	assert.Equal(t, ai.TierFallback, d.Tier)
}

func TestChoose_LogsTier(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p := ai.NewPolicy(dice.NewLoggedRoller(fixedSrc{val: 0}, zap.NewNop()), zap.New(core))
	self, target := fighters()
	self.AddAbility(attack("Jab", 5))

	p.Choose(self, target)
	entries := logs.FilterMessage("ai: ability chosen").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "attack", entries[0].ContextMap()["tier"])
}

func TestChoose_Property_AlwaysUsable(t *testing.T) {
	pool := []func() *ability.Ability{
		func() *ability.Ability { return attack("Jab", 5) },
		func() *ability.Ability { return attack("Smash", 25) },
		func() *ability.Ability { return inflicting("Dart", status.Poison) },
		func() *ability.Ability { return inflicting("Bash", status.Stun) },
		func() *ability.Ability { return buff("Wall", status.DefenseBoost) },
		func() *ability.Ability { return ability.MustNew("Heal", ability.Heal, 20, 10, 0, "", nil) },
		func() *ability.Ability { return ability.MustNew("Nova", ability.Attack, 40, 45, 0, "", nil) },
	}
	rapid.Check(t, func(rt *rapid.T) {
		self, target := fighters()
		picks := rapid.SliceOfN(rapid.IntRange(0, len(pool)-1), 0, 6).Draw(rt, "abilities")
		for _, i := range picks {
			self.AddAbility(pool[i]())
		}
		self.SpendMana(rapid.IntRange(0, 50).Draw(rt, "spent"))
		self.TakeDamage(rapid.IntRange(0, 120).Draw(rt, "damage"))
		seed := rapid.Uint64().Draw(rt, "seed")

		p := ai.NewPolicy(dice.NewLoggedRoller(dice.NewSeededSource(seed), zap.NewNop()), zap.NewNop())
		d := p.Choose(self, target)
		if len(self.UsableAbilities()) == 0 {
			assert.Nil(rt, d.Ability)
			return
		}
		require.NotNil(rt, d.Ability)
		assert.True(rt, d.Ability.CanUse(self))
		if float64(self.HP()) < 0.25*float64(self.MaxHP()) && d.Ability.Kind != ability.Heal {
			for _, a := range self.UsableAbilities() {
				assert.NotEqual(rt, ability.Heal, a.Kind, "heal was usable but tier %s won", d.Tier)
			}
		}
	})
}
