// Package npc provides enemy templates loaded from YAML and spawns
// level-scaled enemies from them.
package npc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// StatDef scales one stat with level: Base + (level-1)*PerLevel.
type StatDef struct {
	Base     int `yaml:"base"`
	PerLevel int `yaml:"per_level"`
}

// At returns the stat's value at level.
func (s StatDef) At(level int) int {
	return s.Base + (level-1)*s.PerLevel
}

// StatBlock holds the scaling of the four base stats.
type StatBlock struct {
	HP      StatDef `yaml:"hp"`
	Mana    StatDef `yaml:"mana"`
	Attack  StatDef `yaml:"attack"`
	Defense StatDef `yaml:"defense"`
}

// RewardDef computes a reward as level*PerLevel plus a bonus rolled uniformly
// in [MinBonus, MaxBonus].
type RewardDef struct {
	PerLevel int `yaml:"per_level"`
	MinBonus int `yaml:"min_bonus"`
	MaxBonus int `yaml:"max_bonus"`
}

// Rewards used when a template omits exp_reward or gold_reward.
var (
	DefaultExpReward  = RewardDef{PerLevel: 20, MinBonus: 5, MaxBonus: 15}
	DefaultGoldReward = RewardDef{PerLevel: 8, MinBonus: 2, MaxBonus: 8}
)

// DropDef is one drop table entry referencing an item catalog ID.
type DropDef struct {
	Item   string  `yaml:"item"`
	Chance float64 `yaml:"chance"`
}

// Template defines a reusable enemy archetype loaded from YAML.
type Template struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Level       int        `yaml:"level"`
	Stats       StatBlock  `yaml:"stats"`
	ExpReward   *RewardDef `yaml:"exp_reward"`
	GoldReward  *RewardDef `yaml:"gold_reward"`
	Abilities   []string   `yaml:"abilities"`
	Drops       []DropDef  `yaml:"drops"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, Level >= 1, base
// HP >= 1, every reward range is ordered and every drop chance is in [0, 1];
// returns an error on the first violation otherwise.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("npc template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("npc template %q: name must not be empty", t.ID)
	}
	if t.Level < 1 {
		return fmt.Errorf("npc template %q: level must be >= 1", t.ID)
	}
	if t.Stats.HP.Base < 1 {
		return fmt.Errorf("npc template %q: stats.hp.base must be >= 1", t.ID)
	}
	for name, r := range map[string]*RewardDef{"exp_reward": t.ExpReward, "gold_reward": t.GoldReward} {
		if r != nil && r.MinBonus > r.MaxBonus {
			return fmt.Errorf("npc template %q: %s min_bonus (%d) must be <= max_bonus (%d)", t.ID, name, r.MinBonus, r.MaxBonus)
		}
	}
	for i, d := range t.Drops {
		if d.Item == "" {
			return fmt.Errorf("npc template %q: drops[%d] must have a non-empty item id", t.ID, i)
		}
		if d.Chance < 0 || d.Chance > 1 {
			return fmt.Errorf("npc template %q: drops[%d] chance must be in [0, 1], got %f", t.ID, i, d.Chance)
		}
	}
	return nil
}

// LoadTemplateFromBytes parses a single enemy template from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Template.
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading npc dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
