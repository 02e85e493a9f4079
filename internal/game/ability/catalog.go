package ability

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/status"
)

// EffectDef is the YAML form of an effect template. Name and Description
// default to "<ability> Effect" and "Status effect from <ability>".
type EffectDef struct {
	Name        string      `yaml:"name"`
	Type        status.Type `yaml:"type"`
	Duration    int         `yaml:"duration"`
	Power       int         `yaml:"power"`
	Description string      `yaml:"description"`
}

// Def is the YAML form of an ability.
type Def struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Kind        Kind       `yaml:"kind"`
	Power       int        `yaml:"power"`
	ManaCost    int        `yaml:"mana_cost"`
	Cooldown    int        `yaml:"cooldown"`
	Description string     `yaml:"description"`
	Effect      *EffectDef `yaml:"effect"`
}

// Validate checks that the Def satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff Build will succeed.
func (d *Def) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if !d.Kind.Valid() {
		errs = append(errs, errors.New("Kind must be one of attack, heal, buff, debuff"))
	}
	if d.ManaCost < 0 {
		errs = append(errs, errors.New("ManaCost must be >= 0"))
	}
	if d.Cooldown < 0 {
		errs = append(errs, errors.New("Cooldown must be >= 0"))
	}
	if d.Effect != nil {
		if !d.Effect.Type.Valid() {
			errs = append(errs, errors.New("Effect.Type must be set"))
		}
		if d.Effect.Duration < 1 {
			errs = append(errs, errors.New("Effect.Duration must be >= 1"))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("ability validation failed: %v", errs)
	}
	return nil
}

// Build returns a brand-new ability instance from the definition.
func (d *Def) Build() (*Ability, error) {
	var effect *status.Effect
	if d.Effect != nil {
		name := d.Effect.Name
		if name == "" {
			name = d.Name + " Effect"
		}
		desc := d.Effect.Description
		if desc == "" {
			desc = fmt.Sprintf("Status effect from %s", d.Name)
		}
		effect = status.New(name, d.Effect.Type, d.Effect.Duration, d.Effect.Power, desc)
	}
	return New(d.Name, d.Kind, d.Power, d.ManaCost, d.Cooldown, d.Description, effect)
}

// LoadDefs reads all *.yaml and *.yml files from dir. Each file holds a list
// of Defs; every definition is validated.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid Defs or the first encountered error.
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
		var batch []*Def
		if err := yaml.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("LoadDefs: cannot parse file %q: %w", path, err)
		}
		for _, d := range batch {
			if err := d.Validate(); err != nil {
				return nil, fmt.Errorf("LoadDefs: invalid ability %q in %q: %w", d.ID, path, err)
			}
		}
		defs = append(defs, batch...)
	}
	return defs, nil
}

// Registry maps ability IDs to their definitions and hands out fresh
// instances, so no two characters ever share cooldown state.
type Registry struct {
	defs map[string]*Def
}

// NewRegistry indexes defs by ID.
//
// Postcondition: returns an error on a duplicate ID.
func NewRegistry(defs []*Def) (*Registry, error) {
	r := &Registry{defs: make(map[string]*Def, len(defs))}
	for _, d := range defs {
		if _, exists := r.defs[d.ID]; exists {
			return nil, fmt.Errorf("ability: NewRegistry: ability ID %q already registered", d.ID)
		}
		r.defs[d.ID] = d
	}
	return r, nil
}

// LoadRegistry loads every definition in dir into a Registry.
func LoadRegistry(dir string) (*Registry, error) {
	defs, err := LoadDefs(dir)
	if err != nil {
		return nil, err
	}
	return NewRegistry(defs)
}

// Def returns the definition for id and whether it was found.
func (r *Registry) Def(id string) (*Def, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// New builds a new instance of ability id.
//
// Postcondition: every call returns a distinct, unowned, ready instance.
func (r *Registry) New(id string) (*Ability, error) {
	d, ok := r.defs[id]
	if !ok {
		return nil, fmt.Errorf("ability: unknown ability %q", id)
	}
	return d.Build()
}

// IDs returns every registered ID in lexical order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.defs))
	for id := range r.defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
