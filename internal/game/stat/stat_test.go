package stat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/stat"
)

func TestParse_Known(t *testing.T) {
	for _, name := range []string{"attack", "defense", "max_hp", "max_mana", "heal", "mana"} {
		s, err := stat.Parse(name)
		require.NoError(t, err)
		assert.Equal(t, stat.Stat(name), s)
	}
}

func TestParse_Unknown(t *testing.T) {
	_, err := stat.Parse("charisma")
	assert.Error(t, err)
}

func TestIsAttribute(t *testing.T) {
	assert.True(t, stat.Attack.IsAttribute())
	assert.True(t, stat.MaxMana.IsAttribute())
	assert.False(t, stat.Heal.IsAttribute())
	assert.False(t, stat.Mana.IsAttribute())
}

func TestYAMLMapKeys(t *testing.T) {
	var m map[stat.Stat]int
	require.NoError(t, yaml.Unmarshal([]byte("attack: 3\ndefense: -1\n"), &m))
	assert.Equal(t, map[stat.Stat]int{stat.Attack: 3, stat.Defense: -1}, m)

	err := yaml.Unmarshal([]byte("luck: 3\n"), &m)
	assert.Error(t, err)
}
