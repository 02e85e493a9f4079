package combat

import (
	"github.com/cory-johannsen/skirmish/internal/game/ability"
	"github.com/cory-johannsen/skirmish/internal/game/ai"
	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// Chooser selects the ability self uses against target this turn.
// A nil result means a basic attack.
type Chooser interface {
	Choose(self, target *character.Character) *ability.Ability
}

// ChooserFunc adapts a function to Chooser.
type ChooserFunc func(self, target *character.Character) *ability.Ability

// Choose calls f.
func (f ChooserFunc) Choose(self, target *character.Character) *ability.Ability {
	return f(self, target)
}

// RandomChooser picks uniformly among self's usable abilities.
type RandomChooser struct {
	roller *dice.Roller
}

// NewRandomChooser creates a RandomChooser.
//
// Precondition: roller must be non-nil.
func NewRandomChooser(roller *dice.Roller) *RandomChooser {
	return &RandomChooser{roller: roller}
}

// Choose returns a usable ability, or nil when none is usable.
func (c *RandomChooser) Choose(self, _ *character.Character) *ability.Ability {
	usable := self.UsableAbilities()
	if len(usable) == 0 {
		return nil
	}
	return usable[c.roller.Pick(len(usable))]
}

// FromPolicy adapts the enemy priority ladder to Chooser.
//
// Precondition: p must be non-nil.
func FromPolicy(p *ai.Policy) Chooser {
	return ChooserFunc(func(self, target *character.Character) *ability.Ability {
		return p.Choose(self, target).Ability
	})
}
