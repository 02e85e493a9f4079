// Package ability implements cooldown-gated combat actions and their catalog.
package ability

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/status"
)

// Kind selects how an ability resolves.
type Kind int

const (
	Attack Kind = iota + 1
	Heal
	Buff
	Debuff
)

var kindNames = map[Kind]string{
	Attack: "attack",
	Heal:   "heal",
	Buff:   "buff",
	Debuff: "debuff",
}

// String returns the content-file name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Valid reports whether k is one of the four ability kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// UnmarshalText implements encoding.TextUnmarshaler for YAML content.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown ability kind %q", string(text))
}

var (
	// attackVariance is added to every attack ability's damage.
	attackVariance = dice.MustParse("1d11-6")
	// healVariance is added to every heal ability's amount.
	healVariance = dice.MustParse("1d5-3")
)

// Caster is the view of a character that ability resolution needs. Both the
// caster and the target of a use satisfy it.
type Caster interface {
	Name() string
	Mana() int
	SpendMana(amount int) bool
	IsActionPrevented() bool
	TotalAttack() int
	TakeDamage(amount int) int
	Heal(amount int)
	IsAlive() bool
	AddStatusEffect(e *status.Effect)
}

// Ability is a reusable, cooldown-gated action. Each instance carries its own
// cooldown and belongs to at most one character.
type Ability struct {
	Name        string
	Kind        Kind
	Power       int
	ManaCost    int
	Cooldown    int
	Description string
	// Effect is a template; every application attaches a fresh instance.
	Effect *status.Effect

	currentCooldown int
	claimed         bool
}

// New validates its arguments and builds a ready ability.
//
// Postcondition: returns an error if kind is out of range, manaCost or
// cooldown is negative, or effect carries an invalid type.
func New(name string, kind Kind, power, manaCost, cooldown int, description string, effect *status.Effect) (*Ability, error) {
	var errs []error
	if name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if !kind.Valid() {
		errs = append(errs, fmt.Errorf("kind %d out of range", int(kind)))
	}
	if manaCost < 0 {
		errs = append(errs, errors.New("mana cost must be >= 0"))
	}
	if cooldown < 0 {
		errs = append(errs, errors.New("cooldown must be >= 0"))
	}
	if effect != nil && !effect.Type.Valid() {
		errs = append(errs, fmt.Errorf("effect %q has invalid type %d", effect.Name, int(effect.Type)))
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("ability %q: %w", name, errors.Join(errs...))
	}
	return &Ability{
		Name:        name,
		Kind:        kind,
		Power:       power,
		ManaCost:    manaCost,
		Cooldown:    cooldown,
		Description: description,
		Effect:      effect,
	}, nil
}

// MustNew is New for statically known abilities. It panics on error.
func MustNew(name string, kind Kind, power, manaCost, cooldown int, description string, effect *status.Effect) *Ability {
	a, err := New(name, kind, power, manaCost, cooldown, description, effect)
	if err != nil {
		panic(err)
	}
	return a
}

// CurrentCooldown returns the rounds left before the ability is ready.
func (a *Ability) CurrentCooldown() int { return a.currentCooldown }

// Inflicts reports whether the ability carries an effect template of one of
// the given types.
func (a *Ability) Inflicts(types ...status.Type) bool {
	if a.Effect == nil {
		return false
	}
	for _, t := range types {
		if a.Effect.Type == t {
			return true
		}
	}
	return false
}

// CanUse reports whether caster may use the ability now.
func (a *Ability) CanUse(caster Caster) bool {
	return a.currentCooldown == 0 && caster.Mana() >= a.ManaCost && !caster.IsActionPrevented()
}

// Use resolves the ability. target may be nil; Heal ignores it.
//
// A failed use consumes neither mana nor cooldown and is reported through
// Outcome.Reason.
//
// Postcondition: on success the caster has paid ManaCost and
// CurrentCooldown() == Cooldown.
func (a *Ability) Use(caster, target Caster, roller *dice.Roller) Outcome {
	if !a.CanUse(caster) {
		if caster.IsActionPrevented() {
			return Outcome{Reason: ReasonPrevented, Message: fmt.Sprintf("%s is unable to act!", caster.Name())}
		}
		return Outcome{Reason: ReasonUnavailable, Message: fmt.Sprintf("%s cannot use %s!", caster.Name(), a.Name)}
	}

	caster.SpendMana(a.ManaCost)
	a.currentCooldown = a.Cooldown

	out := Outcome{OK: true}
	var msgs []string
	switch a.Kind {
	case Attack:
		if target == nil {
			msgs = append(msgs, fmt.Sprintf("%s uses %s!", caster.Name(), a.Name))
			break
		}
		raw := caster.TotalAttack() + a.Power + roller.Total(attackVariance)
		out.Damage = target.TakeDamage(raw)
		msgs = append(msgs, fmt.Sprintf("%s attacks %s with %s for %d damage!", caster.Name(), target.Name(), a.Name, out.Damage))
		if a.Effect != nil && target.IsAlive() {
			out.Applied = a.Effect.Instantiate()
			target.AddStatusEffect(out.Applied)
			msgs = append(msgs, fmt.Sprintf("%s is affected by %s!", target.Name(), out.Applied.Name))
		}
	case Heal:
		out.Healed = a.Power + roller.Total(healVariance)
		caster.Heal(out.Healed)
		msgs = append(msgs, fmt.Sprintf("%s heals for %d HP!", caster.Name(), out.Healed))
		if a.Effect != nil {
			out.Applied = a.Effect.Instantiate()
			caster.AddStatusEffect(out.Applied)
			msgs = append(msgs, fmt.Sprintf("%s gains %s!", caster.Name(), out.Applied.Name))
		}
	case Buff:
		if a.Effect == nil {
			msgs = append(msgs, fmt.Sprintf("%s uses %s!", caster.Name(), a.Name))
			break
		}
		recipient := target
		if recipient == nil {
			recipient = caster
		}
		out.Applied = a.Effect.Instantiate()
		recipient.AddStatusEffect(out.Applied)
		msgs = append(msgs, fmt.Sprintf("%s gains %s!", recipient.Name(), out.Applied.Name))
	case Debuff:
		if target == nil || a.Effect == nil {
			msgs = append(msgs, fmt.Sprintf("%s uses %s!", caster.Name(), a.Name))
			break
		}
		out.Applied = a.Effect.Instantiate()
		target.AddStatusEffect(out.Applied)
		msgs = append(msgs, fmt.Sprintf("%s is afflicted with %s!", target.Name(), out.Applied.Name))
	}
	out.Message = strings.Join(msgs, " ")
	return out
}

// ReduceCooldown advances the cooldown by one round, floored at 0.
func (a *Ability) ReduceCooldown() {
	if a.currentCooldown > 0 {
		a.currentCooldown--
	}
}

// Clone returns an unowned, ready copy of a. The effect template is shared;
// templates are never attached directly.
func (a *Ability) Clone() *Ability {
	return &Ability{
		Name:        a.Name,
		Kind:        a.Kind,
		Power:       a.Power,
		ManaCost:    a.ManaCost,
		Cooldown:    a.Cooldown,
		Description: a.Description,
		Effect:      a.Effect,
	}
}

// Claim marks the instance as owned. It returns false if another owner
// already holds it, in which case the caller must Clone instead.
func (a *Ability) Claim() bool {
	if a.claimed {
		return false
	}
	a.claimed = true
	return true
}
