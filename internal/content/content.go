// Package content loads every YAML catalog the game needs into one Library.
package content

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/ability"
	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
	"github.com/cory-johannsen/skirmish/internal/game/npc"
	"github.com/cory-johannsen/skirmish/internal/game/ruleset"
	"github.com/cory-johannsen/skirmish/internal/game/shop"
)

// Library holds the loaded, cross-validated content catalogs. It is read-only
// after Load and safe to share between goroutines; every character it builds
// owns fresh ability instances.
type Library struct {
	Items     *inventory.Registry
	Abilities *ability.Registry
	Bestiary  *npc.Bestiary
	Shops     []*shop.Def
	// Archetypes is keyed by id.
	Archetypes map[string]*ruleset.Archetype
}

// Load reads the item, ability, enemy, shop and archetype directories named
// by cfg.
//
// Postcondition: every ability and item referenced by an enemy template, a
// shop or an archetype exists; otherwise an error naming the first bad
// reference is returned.
func Load(cfg config.ContentConfig) (*Library, error) {
	items, err := inventory.LoadRegistry(cfg.Items)
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	abilities, err := ability.LoadRegistry(cfg.Abilities)
	if err != nil {
		return nil, fmt.Errorf("loading abilities: %w", err)
	}
	templates, err := npc.LoadTemplates(cfg.Enemies)
	if err != nil {
		return nil, fmt.Errorf("loading enemies: %w", err)
	}
	bestiary, err := npc.NewBestiary(templates, abilities, items)
	if err != nil {
		return nil, fmt.Errorf("building bestiary: %w", err)
	}
	shops, err := shop.LoadDefs(cfg.Shops)
	if err != nil {
		return nil, fmt.Errorf("loading shops: %w", err)
	}
	for _, d := range shops {
		for _, s := range d.Stock {
			if _, ok := items.Item(s.Item); !ok {
				return nil, fmt.Errorf("shop %q: unknown item %q", d.ID, s.Item)
			}
		}
	}
	archetypes, err := ruleset.LoadArchetypes(cfg.Archetypes)
	if err != nil {
		return nil, fmt.Errorf("loading archetypes: %w", err)
	}
	byID := make(map[string]*ruleset.Archetype, len(archetypes))
	for _, a := range archetypes {
		for _, id := range a.Abilities {
			if _, ok := abilities.Def(id); !ok {
				return nil, fmt.Errorf("archetype %q: unknown ability %q", a.ID, id)
			}
		}
		for _, id := range a.Equipment {
			if _, ok := items.Item(id); !ok {
				return nil, fmt.Errorf("archetype %q: unknown item %q", a.ID, id)
			}
		}
		byID[a.ID] = a
	}
	return &Library{
		Items:      items,
		Abilities:  abilities,
		Bestiary:   bestiary,
		Shops:      shops,
		Archetypes: byID,
	}, nil
}

// NewPlayer builds a player from pc: fresh abilities from the catalog, each
// equipment item added to the inventory and equipped in its default slot,
// and the starting gold. A named archetype supplies the whole kit.
//
// Precondition: pc must have passed config validation.
func (l *Library) NewPlayer(pc config.PlayerConfig) (*character.Player, error) {
	if pc.Archetype != "" {
		a, ok := l.Archetypes[pc.Archetype]
		if !ok {
			return nil, fmt.Errorf("unknown archetype %q", pc.Archetype)
		}
		if pc.Name == "" {
			pc.Name = a.Name
		}
		pc.Stats = a.Stats
		pc.Abilities = a.Abilities
		pc.Equipment = a.Equipment
		pc.Gold = a.Gold
	}
	p := character.NewPlayer(pc.Name, pc.Stats)
	for _, id := range pc.Abilities {
		a, err := l.Abilities.New(id)
		if err != nil {
			return nil, fmt.Errorf("player %q: %w", pc.Name, err)
		}
		p.AddAbility(a)
	}
	for _, id := range pc.Equipment {
		item, ok := l.Items.Item(id)
		if !ok {
			return nil, fmt.Errorf("player %q: unknown item %q", pc.Name, id)
		}
		p.AddItem(item)
		if !p.Equip(item, "") {
			return nil, fmt.Errorf("player %q: cannot equip %q", pc.Name, id)
		}
	}
	p.AddGold(pc.Gold)
	return p, nil
}
