package shop

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
)

// StockDef is one stock line; the quantity is rolled uniformly in
// [MinQty, MaxQty] when the shop is built.
type StockDef struct {
	Item   string `yaml:"item"`
	MinQty int    `yaml:"min_qty"`
	MaxQty int    `yaml:"max_qty"`
}

// Def is the YAML form of a shop.
type Def struct {
	ID             string     `yaml:"id"`
	Name           string     `yaml:"name"`
	BuyMultiplier  *float64   `yaml:"buy_multiplier"`
	SellMultiplier *float64   `yaml:"sell_multiplier"`
	Stock          []StockDef `yaml:"stock"`
}

// Validate checks that the Def satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *Def) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if d.BuyMultiplier != nil && *d.BuyMultiplier < 0 {
		errs = append(errs, errors.New("BuyMultiplier must be >= 0"))
	}
	if d.SellMultiplier != nil && *d.SellMultiplier < 0 {
		errs = append(errs, errors.New("SellMultiplier must be >= 0"))
	}
	for i, line := range d.Stock {
		if line.Item == "" {
			errs = append(errs, fmt.Errorf("Stock[%d].Item must not be empty", i))
		}
		if line.MinQty < 1 || line.MaxQty < line.MinQty {
			errs = append(errs, fmt.Errorf("Stock[%d] needs 1 <= min_qty <= max_qty; got %d..%d", i, line.MinQty, line.MaxQty))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("shop validation failed: %v", errs)
	}
	return nil
}

// Build stocks a new Shop from the definition, resolving item IDs in items.
//
// Postcondition: returns an error if any stock line names an unknown item.
func (d *Def) Build(items *inventory.Registry, roller *dice.Roller) (*Shop, error) {
	s := New(d.Name)
	if d.BuyMultiplier != nil {
		s.BuyMultiplier = *d.BuyMultiplier
	}
	if d.SellMultiplier != nil {
		s.SellMultiplier = *d.SellMultiplier
	}
	for _, line := range d.Stock {
		item, ok := items.Item(line.Item)
		if !ok {
			return nil, fmt.Errorf("shop %q: unknown item %q", d.ID, line.Item)
		}
		qty := line.MinQty + roller.Pick(line.MaxQty-line.MinQty+1)
		s.AddItem(item, qty)
	}
	return s, nil
}

// LoadDefs reads every *.yaml and *.yml file in dir as one shop Def.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid Defs sorted by ID or the first encountered error.
func LoadDefs(dir string) ([]*Def, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadDefs: cannot read directory %q: %w", dir, err)
	}

	var defs []*Def
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadDefs: cannot read file %q: %w", path, err)
		}
		var d Def
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("LoadDefs: cannot parse file %q: %w", path, err)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("LoadDefs: invalid shop in %q: %w", path, err)
		}
		defs = append(defs, &d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs, nil
}
