package content_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/content"
	"github.com/cory-johannsen/skirmish/internal/game/character"
)

func repoContent() config.ContentConfig {
	root := filepath.Join("..", "..", "content")
	return config.ContentConfig{
		Items:      filepath.Join(root, "items"),
		Abilities:  filepath.Join(root, "abilities"),
		Enemies:    filepath.Join(root, "enemies"),
		Shops:      filepath.Join(root, "shops"),
		Archetypes: filepath.Join(root, "archetypes"),
		Tactics:    filepath.Join(root, "scripts", "tactics"),
	}
}

func TestLoad_RepoContent(t *testing.T) {
	lib, err := content.Load(repoContent())
	require.NoError(t, err)
	assert.Greater(t, lib.Items.Len(), 0)
	assert.Contains(t, lib.Abilities.IDs(), "fireball")
	assert.Contains(t, lib.Bestiary.IDs(), "dragon")
	assert.Len(t, lib.Shops, 3)
	assert.Len(t, lib.Archetypes, 3)
}

func TestLoad_UnknownShopItem(t *testing.T) {
	cfg := repoContent()
	cfg.Shops = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Shops, "bad.yaml"), []byte(`
id: bad
name: Bad Shop
stock:
  - {item: unobtainium, min_qty: 1, max_qty: 1}
`), 0644))
	_, err := content.Load(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unobtainium")
}

func TestLoad_MissingDir(t *testing.T) {
	cfg := repoContent()
	cfg.Items = filepath.Join(t.TempDir(), "missing")
	_, err := content.Load(cfg)
	assert.Error(t, err)
}

func TestNewPlayer_FromConfig(t *testing.T) {
	lib, err := content.Load(repoContent())
	require.NoError(t, err)

	p, err := lib.NewPlayer(config.PlayerConfig{
		Name:      "Warrior",
		Stats:     character.Stats{HP: 100, Mana: 50, Attack: 15, Defense: 8},
		Abilities: []string{"slash", "battle_cry"},
		Equipment: []string{"iron_sword"},
		Gold:      100,
	})
	require.NoError(t, err)
	require.Len(t, p.Abilities(), 2)
	assert.Equal(t, "Slash", p.Abilities()[0].Name)
	sword := p.Equipped("weapon")
	require.NotNil(t, sword)
	assert.Equal(t, "Iron Sword", sword.Name)
	assert.Equal(t, 23, p.BaseAttack())
	assert.Empty(t, p.Inventory())
	assert.Equal(t, 100, p.Gold())
}

func TestNewPlayer_UnknownAbility(t *testing.T) {
	lib, err := content.Load(repoContent())
	require.NoError(t, err)
	_, err = lib.NewPlayer(config.PlayerConfig{Name: "Hero", Stats: character.DefaultStats(), Abilities: []string{"time_stop"}})
	assert.Error(t, err)
}

func TestNewPlayer_FreshAbilitiesPerPlayer(t *testing.T) {
	lib, err := content.Load(repoContent())
	require.NoError(t, err)
	pc := config.PlayerConfig{Name: "Hero", Stats: character.DefaultStats(), Abilities: []string{"fireball"}}
	a, err := lib.NewPlayer(pc)
	require.NoError(t, err)
	b, err := lib.NewPlayer(pc)
	require.NoError(t, err)
	assert.NotSame(t, a.Abilities()[0], b.Abilities()[0])
}

func TestNewPlayer_FromArchetype(t *testing.T) {
	lib, err := content.Load(repoContent())
	require.NoError(t, err)

	p, err := lib.NewPlayer(config.PlayerConfig{Archetype: "mage", Stats: character.DefaultStats()})
	require.NoError(t, err)
	assert.Equal(t, "Mage", p.Name())
	assert.Equal(t, 80, p.MaxHP())
	assert.Equal(t, 80, p.Gold())
	require.NotEmpty(t, p.Abilities())
	assert.Equal(t, "Fireball", p.Abilities()[0].Name)
	assert.NotNil(t, p.Equipped("weapon"))
	assert.NotNil(t, p.Equipped("armor"))
}

func TestNewPlayer_ArchetypeKeepsExplicitName(t *testing.T) {
	lib, err := content.Load(repoContent())
	require.NoError(t, err)
	p, err := lib.NewPlayer(config.PlayerConfig{Name: "Conan", Archetype: "warrior"})
	require.NoError(t, err)
	assert.Equal(t, "Conan", p.Name())
	assert.Equal(t, 100, p.Gold())
}

func TestNewPlayer_UnknownArchetype(t *testing.T) {
	lib, err := content.Load(repoContent())
	require.NoError(t, err)
	_, err = lib.NewPlayer(config.PlayerConfig{Archetype: "bard"})
	assert.Error(t, err)
}

func TestLoad_ArchetypeUnknownItem(t *testing.T) {
	cfg := repoContent()
	cfg.Archetypes = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Archetypes, "bad.yaml"), []byte(`
id: bad
name: Bad
stats: {hp: 10}
equipment: [excalibur]
`), 0644))
	_, err := content.Load(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "excalibur")
}
