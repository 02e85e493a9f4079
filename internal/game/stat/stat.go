// Package stat defines the finite set of character stats that items, status
// effects and stat points can touch.
package stat

import "fmt"

// Stat names one numeric character stat.
type Stat string

const (
	Attack  Stat = "attack"
	Defense Stat = "defense"
	MaxHP   Stat = "max_hp"
	MaxMana Stat = "max_mana"
	// Heal and Mana are consumable payloads, not character attributes.
	Heal Stat = "heal"
	Mana Stat = "mana"
)

var known = map[Stat]bool{
	Attack:  true,
	Defense: true,
	MaxHP:   true,
	MaxMana: true,
	Heal:    true,
	Mana:    true,
}

// Parse converts a stat name into a Stat.
//
// Postcondition: returns an error for any name outside the known set.
func Parse(s string) (Stat, error) {
	st := Stat(s)
	if !known[st] {
		return "", fmt.Errorf("unknown stat %q", s)
	}
	return st, nil
}

// IsAttribute reports whether s is a persistent character attribute that
// equipment deltas and stat points apply to.
func (s Stat) IsAttribute() bool {
	switch s {
	case Attack, Defense, MaxHP, MaxMana:
		return true
	default:
		return false
	}
}

// UnmarshalText lets content files name stats as YAML map keys.
func (s *Stat) UnmarshalText(text []byte) error {
	st, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}
