package ability

import "github.com/cory-johannsen/skirmish/internal/game/status"

// Reason explains why a use failed.
type Reason int

const (
	// ReasonNone marks a successful use.
	ReasonNone Reason = iota
	// ReasonPrevented means the caster is frozen or stunned.
	ReasonPrevented
	// ReasonUnavailable means the ability is on cooldown or unaffordable.
	ReasonUnavailable
)

// Outcome is the result of Ability.Use. Failed uses are ordinary outcomes,
// not errors.
type Outcome struct {
	OK      bool
	Reason  Reason
	Message string
	// Damage is the damage the target actually took.
	Damage int
	// Healed is the rolled heal amount before the caster's max HP cap.
	Healed int
	// Applied is the effect instance attached by this use, if any.
	Applied *status.Effect
}

// String returns the outcome message.
func (o Outcome) String() string { return o.Message }
