// Package character holds the combat-facing state of players and enemies:
// stats, equipment, inventory, abilities and active status effects.
package character

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/skirmish/internal/game/ability"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
	"github.com/cory-johannsen/skirmish/internal/game/stat"
	"github.com/cory-johannsen/skirmish/internal/game/status"
)

// Stats are the base values a character is created with.
type Stats struct {
	HP      int `mapstructure:"hp" yaml:"hp"`
	Mana    int `mapstructure:"mana" yaml:"mana"`
	Attack  int `mapstructure:"attack" yaml:"attack"`
	Defense int `mapstructure:"defense" yaml:"defense"`
}

// DefaultStats returns the stats of an unconfigured character or player.
func DefaultStats() Stats {
	return Stats{HP: 100, Mana: 50, Attack: 10, Defense: 5}
}

// Character is the state shared by players and enemies.
//
// Invariants: 0 <= hp <= maxHP and 0 <= mana <= maxMana once maxHP and
// maxMana are non-negative; at most one status effect per type.
// A Character is not safe for concurrent use.
type Character struct {
	name        string
	level       int
	maxHP       int
	hp          int
	maxMana     int
	mana        int
	baseAttack  int
	baseDefense int

	abilities []*ability.Ability
	inventory []*inventory.Item
	equipped  map[string]*inventory.Item
	effects   *status.Set
}

// New creates a level 1 character at full HP and mana.
func New(name string, s Stats) *Character {
	return &Character{
		name:        name,
		level:       1,
		maxHP:       s.HP,
		hp:          s.HP,
		maxMana:     s.Mana,
		mana:        s.Mana,
		baseAttack:  s.Attack,
		baseDefense: s.Defense,
		equipped:    make(map[string]*inventory.Item),
		effects:     status.NewSet(),
	}
}

func (c *Character) Name() string     { return c.name }
func (c *Character) Level() int       { return c.level }
func (c *Character) HP() int          { return c.hp }
func (c *Character) MaxHP() int       { return c.maxHP }
func (c *Character) Mana() int        { return c.mana }
func (c *Character) MaxMana() int     { return c.maxMana }
func (c *Character) BaseAttack() int  { return c.baseAttack }
func (c *Character) BaseDefense() int { return c.baseDefense }

// IsAlive reports whether hp is above 0.
func (c *Character) IsAlive() bool { return c.hp > 0 }

// TakeDamage reduces hp by amount less total defense, never by less than 1.
//
// Postcondition: returns the damage actually dealt, always >= 1; hp >= 0.
func (c *Character) TakeDamage(amount int) int {
	actual := max(1, amount-c.TotalDefense())
	c.hp = max(0, c.hp-actual)
	return actual
}

// Heal restores hp up to maxHP. Negative amounts are treated as 0.
func (c *Character) Heal(amount int) {
	c.hp = max(0, min(c.maxHP, c.hp+max(0, amount)))
}

// RestoreMana restores mana up to maxMana. Negative amounts are treated as 0.
func (c *Character) RestoreMana(amount int) {
	c.mana = max(0, min(c.maxMana, c.mana+max(0, amount)))
}

// SpendMana deducts amount if the character has enough.
func (c *Character) SpendMana(amount int) bool {
	if amount < 0 || c.mana < amount {
		return false
	}
	c.mana -= amount
	return true
}

// TotalAttack returns base attack plus equipment and status modifiers,
// floored at 0.
func (c *Character) TotalAttack() int {
	return c.total(stat.Attack, c.baseAttack)
}

// TotalDefense returns base defense plus equipment and status modifiers,
// floored at 0.
func (c *Character) TotalDefense() int {
	return c.total(stat.Defense, c.baseDefense)
}

func (c *Character) total(s stat.Stat, base int) int {
	total := base
	for _, item := range c.equipped {
		total += item.Stat(s)
	}
	total += c.effects.Modifier(s)
	return max(0, total)
}

// adjust applies delta to the base attribute s. Non-attribute stats are
// ignored. Lowering a maximum clamps the current value.
func (c *Character) adjust(s stat.Stat, delta int) {
	switch s {
	case stat.Attack:
		c.baseAttack += delta
	case stat.Defense:
		c.baseDefense += delta
	case stat.MaxHP:
		c.maxHP += delta
		c.hp = max(0, min(c.hp, c.maxHP))
	case stat.MaxMana:
		c.maxMana += delta
		c.mana = max(0, min(c.mana, c.maxMana))
	}
}

// AddItem appends item to the inventory.
func (c *Character) AddItem(item *inventory.Item) {
	c.inventory = append(c.inventory, item)
}

// RemoveItem removes one unit of item from the inventory.
func (c *Character) RemoveItem(item *inventory.Item) bool {
	for i, held := range c.inventory {
		if held == item {
			c.inventory = append(c.inventory[:i], c.inventory[i+1:]...)
			return true
		}
	}
	return false
}

// HasItem reports whether item is in the inventory.
func (c *Character) HasItem(item *inventory.Item) bool {
	for _, held := range c.inventory {
		if held == item {
			return true
		}
	}
	return false
}

// Inventory returns a copy of the inventory in insertion order.
func (c *Character) Inventory() []*inventory.Item {
	out := make([]*inventory.Item, len(c.inventory))
	copy(out, c.inventory)
	return out
}

// Equipped returns the item in slot, or nil.
func (c *Character) Equipped(slot string) *inventory.Item {
	return c.equipped[slot]
}

// Equip moves item from the inventory into slot, adding its attribute deltas
// to the base stats. An empty slot defaults to the item's kind; an occupied
// slot is unequipped first.
//
// Postcondition: returns false with no change if item is not in the inventory.
func (c *Character) Equip(item *inventory.Item, slot string) bool {
	if !c.HasItem(item) {
		return false
	}
	if slot == "" {
		slot = string(item.Kind)
	}
	if _, occupied := c.equipped[slot]; occupied {
		c.Unequip(slot)
	}
	c.RemoveItem(item)
	c.equipped[slot] = item
	for s, delta := range item.Stats {
		c.adjust(s, delta)
	}
	return true
}

// Unequip returns the item in slot to the inventory and subtracts its
// attribute deltas from the base stats.
func (c *Character) Unequip(slot string) bool {
	item, ok := c.equipped[slot]
	if !ok {
		return false
	}
	delete(c.equipped, slot)
	c.inventory = append(c.inventory, item)
	for s, delta := range item.Stats {
		c.adjust(s, -delta)
	}
	return true
}

// UseItem consumes one unit of a consumable, healing by its heal payload and
// restoring mana by its mana payload.
//
// Postcondition: returns false with no change if item is not held or is not
// a consumable.
func (c *Character) UseItem(item *inventory.Item) (string, bool) {
	if item.Kind != inventory.KindConsumable || !c.HasItem(item) {
		return "", false
	}
	c.RemoveItem(item)

	var gains []string
	if amount := item.Stat(stat.Heal); amount > 0 {
		before := c.hp
		c.Heal(amount)
		gains = append(gains, fmt.Sprintf("%d HP", c.hp-before))
	}
	if amount := item.Stat(stat.Mana); amount > 0 {
		before := c.mana
		c.RestoreMana(amount)
		gains = append(gains, fmt.Sprintf("%d MP", c.mana-before))
	}
	if len(gains) == 0 {
		return fmt.Sprintf("%s uses %s.", c.name, item.Name), true
	}
	return fmt.Sprintf("%s uses %s and restores %s.", c.name, item.Name, strings.Join(gains, " and ")), true
}

// AddAbility gives the character an ability and returns the instance it owns.
// An instance already owned by another character is cloned.
func (c *Character) AddAbility(a *ability.Ability) *ability.Ability {
	if !a.Claim() {
		a = a.Clone()
		a.Claim()
	}
	c.abilities = append(c.abilities, a)
	return a
}

// Abilities returns the owned abilities in insertion order.
func (c *Character) Abilities() []*ability.Ability {
	out := make([]*ability.Ability, len(c.abilities))
	copy(out, c.abilities)
	return out
}

// UsableAbilities returns the owned abilities that CanUse allows right now.
func (c *Character) UsableAbilities() []*ability.Ability {
	var out []*ability.Ability
	for _, a := range c.abilities {
		if a.CanUse(c) {
			out = append(out, a)
		}
	}
	return out
}

// UpdateCooldowns advances every owned ability's cooldown by one round.
func (c *Character) UpdateCooldowns() {
	for _, a := range c.abilities {
		a.ReduceCooldown()
	}
}

// AddStatusEffect attaches e, replacing any active effect of the same type.
func (c *Character) AddStatusEffect(e *status.Effect) { c.effects.Add(e) }

// RemoveStatusEffect drops any active effect of type t.
func (c *Character) RemoveStatusEffect(t status.Type) { c.effects.Remove(t) }

// HasStatusEffect reports whether an effect of type t is active.
func (c *Character) HasStatusEffect(t status.Type) bool { return c.effects.Has(t) }

// HasAnyStatusEffect reports whether an effect of any of the types is active.
func (c *Character) HasAnyStatusEffect(types ...status.Type) bool { return c.effects.HasAny(types...) }

// IsActionPrevented reports whether a Freeze or Stun is active.
func (c *Character) IsActionPrevented() bool { return c.effects.PreventsAction() }

// StatusEffects returns the active effects in application order.
func (c *Character) StatusEffects() []*status.Effect { return c.effects.All() }

// ProcessStatusEffects runs one turn of every active effect. See status.Set.Process.
func (c *Character) ProcessStatusEffects() []string { return c.effects.Process(c) }

// StatusSummary describes each active effect and its remaining turns.
func (c *Character) StatusSummary() []string {
	var out []string
	for _, e := range c.effects.All() {
		out = append(out, e.String())
	}
	return out
}
