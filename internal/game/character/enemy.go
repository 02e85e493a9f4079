package character

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
)

// DefaultEnemyStats returns the stats of an unconfigured enemy.
func DefaultEnemyStats() Stats {
	return Stats{HP: 50, Mana: 20, Attack: 8, Defense: 3}
}

// Rewards are what defeating an enemy grants.
type Rewards struct {
	Level int
	Exp   int
	Gold  int
}

// DefaultRewards returns the rewards of an unconfigured enemy.
func DefaultRewards() Rewards {
	return Rewards{Level: 1, Exp: 25, Gold: 10}
}

// Drop is one drop table entry.
type Drop struct {
	Item   *inventory.Item
	Chance float64
}

// Enemy is a character with rewards and a drop table.
type Enemy struct {
	*Character
	expReward  int
	goldReward int
	drops      []Drop
}

// NewEnemy creates an enemy at full HP and mana.
func NewEnemy(name string, s Stats, r Rewards) *Enemy {
	c := New(name, s)
	c.level = r.Level
	return &Enemy{Character: c, expReward: r.Exp, goldReward: r.Gold}
}

func (e *Enemy) ExpReward() int  { return e.expReward }
func (e *Enemy) GoldReward() int { return e.goldReward }

// AddDrop appends an entry to the drop table.
//
// Precondition: chance is in [0, 1].
func (e *Enemy) AddDrop(item *inventory.Item, chance float64) error {
	if math.IsNaN(chance) || chance < 0 || chance > 1 {
		return fmt.Errorf("drop chance for %q must be in [0, 1]; got %v", item.Name, chance)
	}
	e.drops = append(e.drops, Drop{Item: item, Chance: chance})
	return nil
}

// DropTable returns a copy of the drop table in insertion order.
func (e *Enemy) DropTable() []Drop {
	out := make([]Drop, len(e.drops))
	copy(out, e.drops)
	return out
}

// Drops rolls every entry independently and returns the items that dropped,
// in table order.
func (e *Enemy) Drops(roller *dice.Roller) []*inventory.Item {
	var out []*inventory.Item
	for _, d := range e.drops {
		if roller.Chance(d.Chance) {
			out = append(out, d.Item)
		}
	}
	return out
}
