package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/inventory"
	"github.com/cory-johannsen/skirmish/internal/game/stat"
)

func TestNewWeapon_DefaultValue(t *testing.T) {
	w := inventory.NewWeapon("Club", 4, 0, "")
	assert.Equal(t, 40, w.Value)
	assert.Equal(t, inventory.KindWeapon, w.Kind)
	assert.Equal(t, 4, w.Stat(stat.Attack))
	assert.Zero(t, w.Stat(stat.Defense))
}

func TestNewWeapon_ExplicitValue(t *testing.T) {
	assert.Equal(t, 15, inventory.NewWeapon("Rusty Dagger", 3, 15, "").Value)
}

func TestNewArmor_DefaultValue(t *testing.T) {
	a := inventory.NewArmor("Buckler", 5, 0, "")
	assert.Equal(t, 40, a.Value)
	assert.Equal(t, 5, a.Stat(stat.Defense))
}

func TestNewHealthPotion(t *testing.T) {
	p := inventory.NewHealthPotion(25)
	assert.Equal(t, "Health Potion (25 HP)", p.Name)
	assert.Equal(t, 12, p.Value)
	assert.Equal(t, "Restores 25 HP when consumed", p.Description)
	assert.Equal(t, 25, p.Stat(stat.Heal))
	assert.Equal(t, inventory.KindConsumable, p.Kind)
}

func TestNewManaPotion(t *testing.T) {
	p := inventory.NewManaPotion(40)
	assert.Equal(t, "Mana Potion (40 MP)", p.Name)
	assert.Equal(t, 20, p.Value)
	assert.Equal(t, 40, p.Stat(stat.Mana))
}

func TestItem_String(t *testing.T) {
	w := inventory.NewWeapon("Iron Sword", 8, 40, "A sturdy iron sword")
	assert.Equal(t, "Iron Sword (weapon) - A sturdy iron sword", w.String())
}

func TestKind_Valid(t *testing.T) {
	assert.True(t, inventory.KindMisc.Valid())
	assert.False(t, inventory.Kind("junk").Valid())
}

func TestNewWeapon_Property_DefaultValueIsTenTimesAttack(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		atk := rapid.IntRange(1, 100).Draw(rt, "attack")
		assert.Equal(rt, atk*10, inventory.NewWeapon("w", atk, 0, "").Value)
	})
}
