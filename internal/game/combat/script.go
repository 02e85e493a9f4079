package combat

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/ability"
	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/scripting"
)

// ChooseHook is the Lua global a tactic script defines:
//
//	function choose_ability(self, target) return "Fireball" end
//
// Returning nil (or nothing) defers to the fallback chooser.
const ChooseHook = "choose_ability"

// ScriptCaller is the interface required by ScriptChooser to evaluate Lua tactics.
type ScriptCaller interface {
	CallCombatHook(name, hook string, self, target *scripting.CombatantInfo) (lua.LValue, error)
}

// ScriptChooser asks a Lua tactic script which ability to use. Answers that
// do not name a usable ability of self are discarded in favour of Fallback.
type ScriptChooser struct {
	caller   ScriptCaller
	set      string
	fallback Chooser
	logger   *zap.Logger
}

// NewScriptChooser creates a ScriptChooser calling ChooseHook in the script
// set named set.
//
// Precondition: caller and logger must be non-nil; fallback may be nil
// (meaning a basic attack).
func NewScriptChooser(caller ScriptCaller, set string, fallback Chooser, logger *zap.Logger) *ScriptChooser {
	return &ScriptChooser{caller: caller, set: set, fallback: fallback, logger: logger}
}

// Choose implements Chooser.
func (s *ScriptChooser) Choose(self, target *character.Character) *ability.Ability {
	ret, err := s.caller.CallCombatHook(s.set, ChooseHook, Snapshot(self), Snapshot(target))
	if err != nil {
		s.logger.Warn("combat: tactic hook failed", zap.String("set", s.set), zap.Error(err))
		return s.fallbackChoice(self, target)
	}
	name, ok := ret.(lua.LString)
	if !ok {
		return s.fallbackChoice(self, target)
	}
	for _, a := range self.UsableAbilities() {
		if a.Name == string(name) {
			return a
		}
	}
	s.logger.Debug("combat: tactic chose unusable ability",
		zap.String("actor", self.Name()),
		zap.String("ability", string(name)),
	)
	return s.fallbackChoice(self, target)
}

func (s *ScriptChooser) fallbackChoice(self, target *character.Character) *ability.Ability {
	if s.fallback == nil {
		return nil
	}
	return s.fallback.Choose(self, target)
}

// Snapshot copies the script-visible state of c.
func Snapshot(c *character.Character) *scripting.CombatantInfo {
	info := &scripting.CombatantInfo{
		Name:    c.Name(),
		Level:   c.Level(),
		HP:      c.HP(),
		MaxHP:   c.MaxHP(),
		Mana:    c.Mana(),
		MaxMana: c.MaxMana(),
		Attack:  c.TotalAttack(),
		Defense: c.TotalDefense(),
	}
	for _, e := range c.StatusEffects() {
		info.Effects = append(info.Effects, e.Type.String())
	}
	for _, a := range c.Abilities() {
		info.Abilities = append(info.Abilities, scripting.AbilityInfo{
			Name:     a.Name,
			Kind:     a.Kind.String(),
			Power:    a.Power,
			ManaCost: a.ManaCost,
			Cooldown: a.CurrentCooldown(),
			Usable:   a.CanUse(c),
		})
	}
	return info
}
