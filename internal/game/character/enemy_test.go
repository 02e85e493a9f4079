package character_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
)

func TestNewEnemy_Defaults(t *testing.T) {
	e := character.NewEnemy("Grunt", character.DefaultEnemyStats(), character.DefaultRewards())
	assert.Equal(t, 50, e.MaxHP())
	assert.Equal(t, 20, e.Mana())
	assert.Equal(t, 8, e.TotalAttack())
	assert.Equal(t, 3, e.TotalDefense())
	assert.Equal(t, 1, e.Level())
	assert.Equal(t, 25, e.ExpReward())
	assert.Equal(t, 10, e.GoldReward())
}

func TestAddDrop_RejectsOutOfRange(t *testing.T) {
	e := character.NewEnemy("Grunt", character.DefaultEnemyStats(), character.DefaultRewards())
	ear := inventory.NewConsumable("Goblin Ear", 5, "")
	assert.Error(t, e.AddDrop(ear, 1.5))
	assert.Error(t, e.AddDrop(ear, -0.1))
	assert.Error(t, e.AddDrop(ear, math.NaN()))
	assert.Empty(t, e.DropTable())
}

func TestDrops_CertainAndImpossible(t *testing.T) {
	e := character.NewEnemy("Grunt", character.DefaultEnemyStats(), character.DefaultRewards())
	always := inventory.NewConsumable("Dragon Heart", 1000, "")
	never := inventory.NewConsumable("Unicorn Horn", 1000, "")
	require.NoError(t, e.AddDrop(always, 1.0))
	require.NoError(t, e.AddDrop(never, 0.0))

	roller := nopRoller(dice.NewSeededSource(1))
	for i := 0; i < 200; i++ {
		assert.Equal(t, []*inventory.Item{always}, e.Drops(roller))
	}
}

func TestDrops_TableOrder(t *testing.T) {
	e := character.NewEnemy("Grunt", character.DefaultEnemyStats(), character.DefaultRewards())
	a := inventory.NewConsumable("A", 1, "")
	b := inventory.NewConsumable("B", 1, "")
	require.NoError(t, e.AddDrop(a, 0.5))
	require.NoError(t, e.AddDrop(b, 0.5))

	// Intn -> 0 is below every positive threshold.
	assert.Equal(t, []*inventory.Item{a, b}, e.Drops(nopRoller(fixedSrc{val: 0})))
	assert.Empty(t, e.Drops(nopRoller(fixedSrc{val: 999_999})))
}
