// Package ruleset defines player archetypes: named starting kits of stats,
// abilities, equipment and gold that a player can be created from.
package ruleset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/character"
)

// Archetype is a player starting kit.
//
// Precondition: ID and Name must be non-empty and Stats.HP >= 1 after loading.
type Archetype struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Stats       character.Stats `yaml:"stats"`
	// Abilities are ability catalog ids.
	Abilities []string `yaml:"abilities"`
	// Equipment are item catalog ids equipped in their default slot.
	Equipment []string `yaml:"equipment"`
	Gold      int      `yaml:"gold"`
}

// Validate checks that the Archetype satisfies its invariants.
//
// Postcondition: Returns nil if valid, or an error describing every violation.
func (a *Archetype) Validate() error {
	var errs []error
	if a.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if a.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if a.Stats.HP < 1 {
		errs = append(errs, fmt.Errorf("stats.hp must be >= 1, got %d", a.Stats.HP))
	}
	if a.Stats.Mana < 0 || a.Stats.Attack < 0 || a.Stats.Defense < 0 {
		errs = append(errs, errors.New("stats mana, attack and defense must be >= 0"))
	}
	if a.Gold < 0 {
		errs = append(errs, fmt.Errorf("gold must be >= 0, got %d", a.Gold))
	}
	if len(errs) > 0 {
		return fmt.Errorf("archetype %q: %w", a.ID, errors.Join(errs...))
	}
	return nil
}

// LoadArchetypes reads all .yaml files in dir and parses each as an Archetype.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed archetypes sorted by ID (may be empty) or a
// non-nil error; duplicate IDs are an error.
func LoadArchetypes(dir string) ([]*Archetype, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	archetypes := make([]*Archetype, 0, len(files))
	seen := make(map[string]string, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var a Archetype
		if err := yaml.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("parsing archetype file %s: %w", path, err)
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if prev, ok := seen[a.ID]; ok {
			return nil, fmt.Errorf("duplicate archetype id %q in %s and %s", a.ID, prev, path)
		}
		seen[a.ID] = path
		archetypes = append(archetypes, &a)
	}
	sort.Slice(archetypes, func(i, j int) bool { return archetypes[i].ID < archetypes[j].ID })
	return archetypes, nil
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}
