package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/stat"
)

// ItemDef is the YAML form of an Item.
//
// Potions may be declared with Potion instead of Name/Value/Stats; the potion
// kind is inferred from the single heal or mana entry.
type ItemDef struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Kind        Kind              `yaml:"kind"`
	Value       int               `yaml:"value"`
	Description string            `yaml:"description"`
	Stats       map[stat.Stat]int `yaml:"stats"`
	Potion      bool              `yaml:"potion"`
}

// Validate checks that the ItemDef satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *ItemDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if d.Name == "" && !d.Potion {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if !d.Kind.Valid() {
		errs = append(errs, fmt.Errorf("Kind must be one of weapon, armor, consumable, misc; got %q", d.Kind))
	}
	if d.Value < 0 {
		errs = append(errs, errors.New("Value must be >= 0"))
	}
	if d.Potion {
		if d.Kind != KindConsumable {
			errs = append(errs, errors.New("potion must have Kind consumable"))
		}
		if len(d.Stats) != 1 || (d.Stats[stat.Heal] <= 0 && d.Stats[stat.Mana] <= 0) {
			errs = append(errs, errors.New("potion must declare exactly one positive heal or mana stat"))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %v", errs)
	}
	return nil
}

// Build converts the definition into an Item.
//
// Precondition: d.Validate() returned nil.
func (d *ItemDef) Build() *Item {
	var item *Item
	switch {
	case d.Potion && d.Stats[stat.Heal] > 0:
		item = NewHealthPotion(d.Stats[stat.Heal])
	case d.Potion:
		item = NewManaPotion(d.Stats[stat.Mana])
	case d.Kind == KindWeapon && d.Value == 0:
		item = NewWeapon(d.Name, d.Stats[stat.Attack], 0, d.Description)
	case d.Kind == KindArmor && d.Value == 0:
		item = NewArmor(d.Name, d.Stats[stat.Defense], 0, d.Description)
	default:
		stats := make(map[stat.Stat]int, len(d.Stats))
		for s, v := range d.Stats {
			stats[s] = v
		}
		item = &Item{
			Name:        d.Name,
			Kind:        d.Kind,
			Value:       d.Value,
			Description: d.Description,
			Stats:       stats,
		}
	}
	item.ID = d.ID
	return item
}

// LoadItems reads all *.yaml and *.yml files from dir. Each file holds a list
// of ItemDefs; every definition is validated.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid ItemDefs or the first encountered error.
func LoadItems(dir string) ([]*ItemDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadItems: cannot read directory %q: %w", dir, err)
	}

	var items []*ItemDef
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadItems: cannot read file %q: %w", path, err)
		}
		var defs []*ItemDef
		if err := yaml.Unmarshal(data, &defs); err != nil {
			return nil, fmt.Errorf("LoadItems: cannot parse file %q: %w", path, err)
		}
		for _, d := range defs {
			if err := d.Validate(); err != nil {
				return nil, fmt.Errorf("LoadItems: invalid item %q in %q: %w", d.ID, path, err)
			}
		}
		items = append(items, defs...)
	}
	return items, nil
}
