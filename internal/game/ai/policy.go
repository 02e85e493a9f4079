// Package ai implements the enemy decision policy: an ordered priority ladder
// over the enemy's currently usable abilities.
package ai

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/ability"
	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/status"
)

// Tier identifies the rung of the ladder that produced a decision.
type Tier int

const (
	TierNone Tier = iota
	TierHeal
	TierBuff
	TierDamageOverTime
	TierCrowdControl
	TierStatDebuff
	TierHeavyAttack
	TierAttack
	TierFallback
)

var tierNames = [...]string{
	TierNone:           "none",
	TierHeal:           "heal",
	TierBuff:           "buff",
	TierDamageOverTime: "damage_over_time",
	TierCrowdControl:   "crowd_control",
	TierStatDebuff:     "stat_debuff",
	TierHeavyAttack:    "heavy_attack",
	TierAttack:         "attack",
	TierFallback:       "fallback",
}

func (t Tier) String() string {
	if t < 0 || int(t) >= len(tierNames) {
		return "unknown"
	}
	return tierNames[t]
}

const (
	// criticalHPFraction is the HP fraction below which healing takes priority.
	criticalHPFraction = 0.25
	// heavyAttackPower is the minimum power of a heavy attack.
	heavyAttackPower = 20
)

// rung is one step of the ladder. It applies when active reports true and at
// least one usable ability satisfies match.
type rung struct {
	tier   Tier
	active func(self, target *character.Character) bool
	match  func(a *ability.Ability) bool
}

func always(_, _ *character.Character) bool { return true }

func isKind(k ability.Kind) func(*ability.Ability) bool {
	return func(a *ability.Ability) bool { return a.Kind == k }
}

func inflicts(types ...status.Type) func(*ability.Ability) bool {
	return func(a *ability.Ability) bool { return a.Inflicts(types...) }
}

func targetLacks(types ...status.Type) func(_, target *character.Character) bool {
	return func(_, target *character.Character) bool { return !target.HasAnyStatusEffect(types...) }
}

// ladder is evaluated top to bottom; the first rung with a candidate wins.
// Its order is part of the game's balance and must not change.
var ladder = []rung{
	{
		tier: TierHeal,
		active: func(self, _ *character.Character) bool {
			return float64(self.HP()) < float64(self.MaxHP())*criticalHPFraction
		},
		match: isKind(ability.Heal),
	},
	{
		tier: TierBuff,
		active: func(self, _ *character.Character) bool {
			return !self.HasAnyStatusEffect(status.StrengthBoost, status.DefenseBoost, status.SpeedBoost, status.Regeneration)
		},
		match: isKind(ability.Buff),
	},
	{
		tier:   TierDamageOverTime,
		active: targetLacks(status.Poison, status.Burn),
		match:  inflicts(status.Poison, status.Burn),
	},
	{
		tier:   TierCrowdControl,
		active: targetLacks(status.Stun, status.Freeze),
		match:  inflicts(status.Stun, status.Freeze),
	},
	{
		tier:   TierStatDebuff,
		active: targetLacks(status.Weakness, status.Vulnerability),
		match:  inflicts(status.Weakness, status.Vulnerability),
	},
	{
		tier:   TierHeavyAttack,
		active: always,
		match:  func(a *ability.Ability) bool { return a.Kind == ability.Attack && a.Power >= heavyAttackPower },
	},
	{
		tier:   TierAttack,
		active: always,
		match:  isKind(ability.Attack),
	},
	{
		tier:   TierFallback,
		active: always,
		match:  func(*ability.Ability) bool { return true },
	},
}

// Decision is the result of Policy.Choose. Ability is nil when nothing is usable.
type Decision struct {
	Ability *ability.Ability
	Tier    Tier
}

// Policy chooses enemy abilities.
type Policy struct {
	roller *dice.Roller
	logger *zap.Logger
}

// NewPolicy creates a Policy.
//
// Precondition: roller and logger must be non-nil.
func NewPolicy(roller *dice.Roller, logger *zap.Logger) *Policy {
	return &Policy{roller: roller, logger: logger}
}

// Choose picks self's ability against target. Within the winning tier the
// pick is uniform.
//
// Postcondition: Decision.Ability is either nil (TierNone) or usable by self.
func (p *Policy) Choose(self, target *character.Character) Decision {
	usable := self.UsableAbilities()
	if len(usable) == 0 {
		p.logger.Debug("ai: no usable ability", zap.String("actor", self.Name()))
		return Decision{Tier: TierNone}
	}

	for _, r := range ladder {
		if !r.active(self, target) {
			continue
		}
		var candidates []*ability.Ability
		for _, a := range usable {
			if r.match(a) {
				candidates = append(candidates, a)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		chosen := candidates[p.roller.Pick(len(candidates))]
		p.logger.Debug("ai: ability chosen",
			zap.String("actor", self.Name()),
			zap.String("target", target.Name()),
			zap.Stringer("tier", r.tier),
			zap.String("ability", chosen.Name),
			zap.Int("candidates", len(candidates)),
		)
		return Decision{Ability: chosen, Tier: r.tier}
	}
	// Unreachable: the fallback rung matches every usable ability.
	return Decision{Tier: TierNone}
}
