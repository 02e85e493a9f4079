package combat

// EventKind classifies a round event.
type EventKind int

const (
	// EventStatus is a message from status-effect processing.
	EventStatus EventKind = iota
	// EventAbility is a successful ability use.
	EventAbility
	// EventFailed is an ability use refused by the rules (cooldown, mana).
	EventFailed
	// EventBasicAttack is the fallback attack when no ability was chosen.
	EventBasicAttack
	// EventPrevented is emitted when freeze or stun stops an actor.
	EventPrevented
)

// String returns a snake_case label for logging.
func (k EventKind) String() string {
	switch k {
	case EventStatus:
		return "status"
	case EventAbility:
		return "ability"
	case EventFailed:
		return "failed"
	case EventBasicAttack:
		return "basic_attack"
	case EventPrevented:
		return "prevented"
	default:
		return "unknown"
	}
}

// Event records one thing that happened in a round.
type Event struct {
	Actor   string
	Kind    EventKind
	Message string
	// Damage is the hp actually removed from the opponent, 0 if none.
	Damage int
}

// Round is the ordered record of one PlayRound call.
type Round struct {
	Number   int
	Events   []Event
	PlayerHP int
	EnemyHP  int
}

func (r *Round) add(actor string, kind EventKind, msg string) {
	r.Events = append(r.Events, Event{Actor: actor, Kind: kind, Message: msg})
}

func (r *Round) addDamage(actor string, kind EventKind, msg string, damage int) {
	r.Events = append(r.Events, Event{Actor: actor, Kind: kind, Message: msg, Damage: damage})
}

// Messages returns the event messages in order.
func (r Round) Messages() []string {
	out := make([]string, len(r.Events))
	for i, ev := range r.Events {
		out[i] = ev.Message
	}
	return out
}
