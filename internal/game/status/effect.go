// Package status implements timed status effects and the ordered per-character
// set that holds them.
package status

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/stat"
)

// Type is one of the ten status effect kinds.
type Type int

const (
	Poison Type = iota + 1
	Burn
	Freeze
	Stun
	StrengthBoost
	DefenseBoost
	SpeedBoost
	Weakness
	Vulnerability
	Regeneration
)

var typeNames = map[Type]string{
	Poison:        "poison",
	Burn:          "burn",
	Freeze:        "freeze",
	Stun:          "stun",
	StrengthBoost: "strength_boost",
	DefenseBoost:  "defense_boost",
	SpeedBoost:    "speed_boost",
	Weakness:      "weakness",
	Vulnerability: "vulnerability",
	Regeneration:  "regeneration",
}

// String returns the content-file name of the type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(t))
}

// Valid reports whether t is one of the ten defined kinds.
func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// ParseType converts a content-file name into a Type.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown status effect type %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler for YAML content.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid status effect type %d", int(t))
	}
	return []byte(t.String()), nil
}

// Owner is the character an effect is attached to.
type Owner interface {
	Name() string
	TakeDamage(amount int) int
	Heal(amount int)
}

// Effect is a timed modifier or periodic damage/heal attached to a character.
// An Effect held by an ability is a template; only instances returned by
// Instantiate are ever attached.
//
// Invariant: Remaining <= Duration.
type Effect struct {
	Name        string
	Type        Type
	Duration    int
	Remaining   int
	Power       int
	Description string
}

// New builds an effect with a full remaining duration.
func New(name string, typ Type, duration, power int, description string) *Effect {
	return &Effect{
		Name:        name,
		Type:        typ,
		Duration:    duration,
		Remaining:   duration,
		Power:       power,
		Description: description,
	}
}

// Instantiate returns a fresh copy of e with its own countdown.
func (e *Effect) Instantiate() *Effect {
	return New(e.Name, e.Type, e.Duration, e.Power, e.Description)
}

// Apply runs one turn of the effect against owner and returns the resulting
// message. Stat-modifying types only report; their numbers are read through
// Modifier. Every call on a live effect consumes one turn.
//
// Postcondition: Remaining is decremented by 1 unless it was already <= 0.
func (e *Effect) Apply(owner Owner) string {
	if e.Remaining <= 0 {
		return ""
	}

	var msg string
	switch e.Type {
	case Poison:
		dealt := owner.TakeDamage(e.Power)
		msg = fmt.Sprintf("%s takes %d poison damage!", owner.Name(), dealt)
	case Burn:
		dealt := owner.TakeDamage(e.Power)
		msg = fmt.Sprintf("%s takes %d burn damage!", owner.Name(), dealt)
	case Regeneration:
		owner.Heal(e.Power)
		msg = fmt.Sprintf("%s regenerates %d HP!", owner.Name(), e.Power)
	case Freeze:
		msg = fmt.Sprintf("%s is frozen and cannot act!", owner.Name())
	case Stun:
		msg = fmt.Sprintf("%s is stunned and cannot act!", owner.Name())
	case StrengthBoost, Weakness, DefenseBoost, Vulnerability:
		msg = fmt.Sprintf("%s is affected by %s!", owner.Name(), e.Name)
	}

	e.Remaining--
	return msg
}

// Expired reports whether the effect has run out.
func (e *Effect) Expired() bool {
	return e.Remaining <= 0
}

// PreventsAction reports whether the effect stops its owner from acting.
func (e *Effect) PreventsAction() bool {
	return e.Type == Freeze || e.Type == Stun
}

// Modifier returns the signed delta this effect contributes to s.
// SpeedBoost is a tag only and never modifies a stat.
func (e *Effect) Modifier(s stat.Stat) int {
	switch {
	case e.Type == StrengthBoost && s == stat.Attack:
		return e.Power
	case e.Type == Weakness && s == stat.Attack:
		return -e.Power
	case e.Type == DefenseBoost && s == stat.Defense:
		return e.Power
	case e.Type == Vulnerability && s == stat.Defense:
		return -e.Power
	}
	return 0
}

// String returns "<name> (<n> turns remaining)".
func (e *Effect) String() string {
	return fmt.Sprintf("%s (%d turns remaining)", e.Name, e.Remaining)
}
