package npc

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/skirmish/internal/game/ability"
	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
)

// roll returns level*PerLevel plus a uniform bonus.
func (r RewardDef) roll(level int, roller *dice.Roller) int {
	return level*r.PerLevel + r.MinBonus + roller.Pick(r.MaxBonus-r.MinBonus+1)
}

// Spawn builds an enemy of this template at level. A level < 1 uses the
// template's default level. Abilities are fresh instances from abilities and
// drops are resolved in items.
//
// Precondition: t has passed Validate; roller must be non-nil.
// Postcondition: the enemy is named "<Name> (Lv.<level>)" and owns its
// abilities exclusively.
func (t *Template) Spawn(level int, abilities *ability.Registry, items *inventory.Registry, roller *dice.Roller) (*character.Enemy, error) {
	if level < 1 {
		level = t.Level
	}

	expDef, goldDef := DefaultExpReward, DefaultGoldReward
	if t.ExpReward != nil {
		expDef = *t.ExpReward
	}
	if t.GoldReward != nil {
		goldDef = *t.GoldReward
	}

	e := character.NewEnemy(
		fmt.Sprintf("%s (Lv.%d)", t.Name, level),
		character.Stats{
			HP:      t.Stats.HP.At(level),
			Mana:    t.Stats.Mana.At(level),
			Attack:  t.Stats.Attack.At(level),
			Defense: t.Stats.Defense.At(level),
		},
		character.Rewards{
			Level: level,
			Exp:   expDef.roll(level, roller),
			Gold:  goldDef.roll(level, roller),
		},
	)

	for _, id := range t.Abilities {
		a, err := abilities.New(id)
		if err != nil {
			return nil, fmt.Errorf("spawning %q: %w", t.ID, err)
		}
		e.AddAbility(a)
	}
	for _, d := range t.Drops {
		item, ok := items.Item(d.Item)
		if !ok {
			return nil, fmt.Errorf("spawning %q: unknown drop item %q", t.ID, d.Item)
		}
		if err := e.AddDrop(item, d.Chance); err != nil {
			return nil, fmt.Errorf("spawning %q: %w", t.ID, err)
		}
	}
	return e, nil
}

// Bestiary indexes templates by ID together with the catalogs they reference.
// It is read-only after construction and may be shared between goroutines.
type Bestiary struct {
	templates map[string]*Template
	abilities *ability.Registry
	items     *inventory.Registry
}

// NewBestiary indexes templates and checks that every referenced ability and
// item exists.
//
// Postcondition: returns an error on a duplicate template ID or a dangling
// reference.
func NewBestiary(templates []*Template, abilities *ability.Registry, items *inventory.Registry) (*Bestiary, error) {
	b := &Bestiary{
		templates: make(map[string]*Template, len(templates)),
		abilities: abilities,
		items:     items,
	}
	for _, t := range templates {
		if _, exists := b.templates[t.ID]; exists {
			return nil, fmt.Errorf("npc: duplicate template ID %q", t.ID)
		}
		for _, id := range t.Abilities {
			if _, ok := abilities.Def(id); !ok {
				return nil, fmt.Errorf("npc template %q: unknown ability %q", t.ID, id)
			}
		}
		for _, d := range t.Drops {
			if _, ok := items.Item(d.Item); !ok {
				return nil, fmt.Errorf("npc template %q: unknown drop item %q", t.ID, d.Item)
			}
		}
		b.templates[t.ID] = t
	}
	return b, nil
}

// Template returns the template for id and whether it was found.
func (b *Bestiary) Template(id string) (*Template, bool) {
	t, ok := b.templates[id]
	return t, ok
}

// IDs returns every template ID in lexical order.
func (b *Bestiary) IDs() []string {
	ids := make([]string, 0, len(b.templates))
	for id := range b.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Spawn builds an enemy from template id. See Template.Spawn.
func (b *Bestiary) Spawn(id string, level int, roller *dice.Roller) (*character.Enemy, error) {
	t, ok := b.templates[id]
	if !ok {
		return nil, fmt.Errorf("npc: unknown template %q", id)
	}
	return t.Spawn(level, b.abilities, b.items, roller)
}
