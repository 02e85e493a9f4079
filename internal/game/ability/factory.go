package ability

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/status"
)

// NewAttack builds a plain attack ability.
func NewAttack(name string, power, manaCost, cooldown int, description string) (*Ability, error) {
	return New(name, Attack, power, manaCost, cooldown, description, nil)
}

// NewHeal builds a self-heal ability.
func NewHeal(name string, power, manaCost, cooldown int, description string) (*Ability, error) {
	return New(name, Heal, power, manaCost, cooldown, description, nil)
}

// NewBuff builds a buff with no effect. Buffs that attach an effect are built
// with NewInflicting and kind Buff.
func NewBuff(name string, manaCost, cooldown int, description string) (*Ability, error) {
	return New(name, Buff, 0, manaCost, cooldown, description, nil)
}

// NewInflicting builds an ability of the given kind that attaches an effect
// named "<name> Effect".
func NewInflicting(name string, kind Kind, power, manaCost int, effectType status.Type, effectDuration, effectPower, cooldown int, description string) (*Ability, error) {
	effect := status.New(
		name+" Effect",
		effectType,
		effectDuration,
		effectPower,
		fmt.Sprintf("Status effect from %s", name),
	)
	return New(name, kind, power, manaCost, cooldown, description, effect)
}
