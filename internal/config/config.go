// Package config provides Viper-based configuration loading for the skirmish tools.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/skirmish/internal/game/character"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// ContentConfig locates the YAML and Lua content directories.
type ContentConfig struct {
	Items      string `mapstructure:"items"`
	Abilities  string `mapstructure:"abilities"`
	Enemies    string `mapstructure:"enemies"`
	Shops      string `mapstructure:"shops"`
	Archetypes string `mapstructure:"archetypes"`
	Tactics    string `mapstructure:"tactics"`
}

// PlayerConfig describes the arena's player character. When Archetype is set
// the archetype's kit replaces Stats, Abilities, Equipment and Gold, and Name
// defaults to the archetype name.
type PlayerConfig struct {
	Name      string          `mapstructure:"name"`
	Archetype string          `mapstructure:"archetype"`
	Stats     character.Stats `mapstructure:"stats"`
	// Abilities are ability catalog ids.
	Abilities []string `mapstructure:"abilities"`
	// Equipment are item catalog ids equipped in their default slot.
	Equipment []string `mapstructure:"equipment"`
	Gold      int      `mapstructure:"gold"`
}

// Tactic names accepted by ArenaConfig.Tactic.
const (
	TacticRandom = "random"
	TacticPolicy = "policy"
	TacticScript = "script"
)

// ArenaConfig holds cmd/arena settings.
type ArenaConfig struct {
	// Encounters is the number of independent encounters to run.
	Encounters int `mapstructure:"encounters"`
	// Workers bounds how many encounters run at once.
	Workers   int `mapstructure:"workers"`
	MaxRounds int `mapstructure:"max_rounds"`
	// Seed is the base seed; encounter i uses Seed+i. Zero draws from crypto/rand.
	Seed       uint64 `mapstructure:"seed"`
	Enemy      string `mapstructure:"enemy"`
	EnemyLevel int    `mapstructure:"enemy_level"`
	// Tactic selects the player chooser: "random", "policy" or "script".
	Tactic string `mapstructure:"tactic"`
	// ScriptLimit is the per-call Lua instruction budget; 0 uses the default.
	ScriptLimit int          `mapstructure:"script_limit"`
	Player      PlayerConfig `mapstructure:"player"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Content ContentConfig `mapstructure:"content"`
	Arena   ArenaConfig   `mapstructure:"arena"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateArena(c.Arena); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	for _, d := range []struct{ key, dir string }{
		{"content.items", c.Items},
		{"content.abilities", c.Abilities},
		{"content.enemies", c.Enemies},
		{"content.shops", c.Shops},
		{"content.archetypes", c.Archetypes},
	} {
		if d.dir == "" {
			errs = append(errs, d.key+" must not be empty")
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateArena(a ArenaConfig) error {
	var errs []string
	if a.Encounters < 1 {
		errs = append(errs, fmt.Sprintf("arena.encounters must be >= 1, got %d", a.Encounters))
	}
	if a.Workers < 1 {
		errs = append(errs, fmt.Sprintf("arena.workers must be >= 1, got %d", a.Workers))
	}
	if a.MaxRounds < 1 {
		errs = append(errs, fmt.Sprintf("arena.max_rounds must be >= 1, got %d", a.MaxRounds))
	}
	if a.Enemy == "" {
		errs = append(errs, "arena.enemy must not be empty")
	}
	if a.EnemyLevel < 0 {
		errs = append(errs, fmt.Sprintf("arena.enemy_level must be >= 0, got %d", a.EnemyLevel))
	}
	validTactics := map[string]bool{TacticRandom: true, TacticPolicy: true, TacticScript: true}
	if !validTactics[a.Tactic] {
		errs = append(errs, fmt.Sprintf("arena.tactic must be one of [random, policy, script], got %q", a.Tactic))
	}
	if a.ScriptLimit < 0 {
		errs = append(errs, fmt.Sprintf("arena.script_limit must be >= 0, got %d", a.ScriptLimit))
	}
	p := a.Player
	if p.Name == "" && p.Archetype == "" {
		errs = append(errs, "arena.player.name must not be empty without an archetype")
	}
	if p.Stats.HP < 1 {
		errs = append(errs, fmt.Sprintf("arena.player.stats.hp must be >= 1, got %d", p.Stats.HP))
	}
	if p.Stats.Mana < 0 || p.Stats.Attack < 0 || p.Stats.Defense < 0 {
		errs = append(errs, "arena.player.stats mana, attack and defense must be >= 0")
	}
	if p.Gold < 0 {
		errs = append(errs, fmt.Sprintf("arena.player.gold must be >= 0, got %d", p.Gold))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with SKIRMISH_ prefix
	v.SetEnvPrefix("SKIRMISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default values.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("content.items", "content/items")
	v.SetDefault("content.abilities", "content/abilities")
	v.SetDefault("content.enemies", "content/enemies")
	v.SetDefault("content.shops", "content/shops")
	v.SetDefault("content.archetypes", "content/archetypes")
	v.SetDefault("content.tactics", "content/scripts/tactics")

	def := character.DefaultStats()
	v.SetDefault("arena.encounters", 10)
	v.SetDefault("arena.workers", 4)
	v.SetDefault("arena.max_rounds", 30)
	v.SetDefault("arena.seed", 0)
	v.SetDefault("arena.enemy", "goblin")
	v.SetDefault("arena.enemy_level", 0)
	v.SetDefault("arena.tactic", TacticRandom)
	v.SetDefault("arena.script_limit", 0)
	v.SetDefault("arena.player.name", "Hero")
	v.SetDefault("arena.player.archetype", "")
	v.SetDefault("arena.player.stats.hp", def.HP)
	v.SetDefault("arena.player.stats.mana", def.Mana)
	v.SetDefault("arena.player.stats.attack", def.Attack)
	v.SetDefault("arena.player.stats.defense", def.Defense)
	v.SetDefault("arena.player.abilities", []string{"slash", "heal"})
	v.SetDefault("arena.player.gold", 0)
}
