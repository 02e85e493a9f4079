package inventory

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/stat"
)

// Kind classifies an item. An item's Kind is also its default equipment slot.
type Kind string

// Kind constants for Item.Kind.
const (
	KindWeapon     Kind = "weapon"
	KindArmor      Kind = "armor"
	KindConsumable Kind = "consumable"
	KindMisc       Kind = "misc"
)

// validKinds is the set of valid item kinds.
var validKinds = map[Kind]bool{
	KindWeapon:     true,
	KindArmor:      true,
	KindConsumable: true,
	KindMisc:       true,
}

// Valid reports whether k is one of the four item kinds.
func (k Kind) Valid() bool { return validKinds[k] }

// Item is an immutable piece of equipment, consumable or loot. Items are
// shared by pointer between inventories, drop tables and shop stock; identity
// is pointer identity.
type Item struct {
	ID          string
	Name        string
	Kind        Kind
	Value       int
	Description string
	Stats       map[stat.Stat]int
}

// Stat returns the item's delta for s, or 0 when the item has none.
func (i *Item) Stat(s stat.Stat) int {
	return i.Stats[s]
}

// String returns "<name> (<kind>) - <description>".
func (i *Item) String() string {
	return fmt.Sprintf("%s (%s) - %s", i.Name, i.Kind, i.Description)
}

// NewWeapon builds a weapon granting attack. A value <= 0 defaults to attack*10.
func NewWeapon(name string, attack, value int, description string) *Item {
	if value <= 0 {
		value = attack * 10
	}
	return &Item{
		Name:        name,
		Kind:        KindWeapon,
		Value:       value,
		Description: description,
		Stats:       map[stat.Stat]int{stat.Attack: attack},
	}
}

// NewArmor builds armor granting defense. A value <= 0 defaults to defense*8.
func NewArmor(name string, defense, value int, description string) *Item {
	if value <= 0 {
		value = defense * 8
	}
	return &Item{
		Name:        name,
		Kind:        KindArmor,
		Value:       value,
		Description: description,
		Stats:       map[stat.Stat]int{stat.Defense: defense},
	}
}

// NewConsumable builds a consumable with no payload.
func NewConsumable(name string, value int, description string) *Item {
	return &Item{
		Name:        name,
		Kind:        KindConsumable,
		Value:       value,
		Description: description,
		Stats:       map[stat.Stat]int{},
	}
}

// NewHealthPotion builds a consumable that restores power HP.
func NewHealthPotion(power int) *Item {
	return &Item{
		Name:        fmt.Sprintf("Health Potion (%d HP)", power),
		Kind:        KindConsumable,
		Value:       power / 2,
		Description: fmt.Sprintf("Restores %d HP when consumed", power),
		Stats:       map[stat.Stat]int{stat.Heal: power},
	}
}

// NewManaPotion builds a consumable that restores power MP.
func NewManaPotion(power int) *Item {
	return &Item{
		Name:        fmt.Sprintf("Mana Potion (%d MP)", power),
		Kind:        KindConsumable,
		Value:       power / 2,
		Description: fmt.Sprintf("Restores %d MP when consumed", power),
		Stats:       map[stat.Stat]int{stat.Mana: power},
	}
}
