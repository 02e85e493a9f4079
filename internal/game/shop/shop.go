// Package shop implements buying and selling items for gold.
package shop

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
)

const (
	// DefaultBuyMultiplier scales an item's value into its purchase price.
	DefaultBuyMultiplier = 1.0
	// DefaultSellMultiplier scales an item's value into what the shop pays.
	DefaultSellMultiplier = 0.5
)

// Shop is a vendor with a stock of items. Each unit of stock is a separate
// entry; several entries may share one Item.
type Shop struct {
	Name           string
	BuyMultiplier  float64
	SellMultiplier float64
	stock          []*inventory.Item
}

// New creates an empty shop with the default multipliers.
func New(name string) *Shop {
	return &Shop{
		Name:           name,
		BuyMultiplier:  DefaultBuyMultiplier,
		SellMultiplier: DefaultSellMultiplier,
	}
}

// AddItem adds quantity units of item to the stock.
func (s *Shop) AddItem(item *inventory.Item, quantity int) {
	for i := 0; i < quantity; i++ {
		s.stock = append(s.stock, item)
	}
}

// RemoveItem removes one unit of item from the stock.
func (s *Shop) RemoveItem(item *inventory.Item) bool {
	for i, held := range s.stock {
		if held == item {
			s.stock = append(s.stock[:i], s.stock[i+1:]...)
			return true
		}
	}
	return false
}

// InStock reports whether at least one unit of item is stocked.
func (s *Shop) InStock(item *inventory.Item) bool {
	for _, held := range s.stock {
		if held == item {
			return true
		}
	}
	return false
}

// BuyPrice is floor(value * BuyMultiplier).
func (s *Shop) BuyPrice(item *inventory.Item) int {
	return int(math.Floor(float64(item.Value) * s.BuyMultiplier))
}

// SellPrice is floor(value * SellMultiplier).
func (s *Shop) SellPrice(item *inventory.Item) int {
	return int(math.Floor(float64(item.Value) * s.SellMultiplier))
}

// Buy sells one unit of item to p.
//
// Postcondition: returns false with no change if the item is out of stock or
// p cannot afford it.
func (s *Shop) Buy(p *character.Player, item *inventory.Item) bool {
	if !s.InStock(item) {
		return false
	}
	if !p.SpendGold(s.BuyPrice(item)) {
		return false
	}
	s.RemoveItem(item)
	p.AddItem(item)
	return true
}

// Sell buys one unit of item from p and adds it to the stock.
//
// Postcondition: returns false with no change if p does not hold the item.
func (s *Shop) Sell(p *character.Player, item *inventory.Item) bool {
	if !p.RemoveItem(item) {
		return false
	}
	p.AddGold(s.SellPrice(item))
	s.AddItem(item, 1)
	return true
}

// Stock returns a copy of the stock in insertion order.
func (s *Shop) Stock() []*inventory.Item {
	out := make([]*inventory.Item, len(s.stock))
	copy(out, s.stock)
	return out
}

// List groups the stock by item name, in order of first appearance, as
// "<name> x<qty> - <price> gold". The price is that of the first unit seen.
func (s *Shop) List() []string {
	type line struct {
		item *inventory.Item
		qty  int
	}
	var order []string
	lines := make(map[string]*line)
	for _, item := range s.stock {
		if l, ok := lines[item.Name]; ok {
			l.qty++
			continue
		}
		lines[item.Name] = &line{item: item, qty: 1}
		order = append(order, item.Name)
	}

	out := make([]string, 0, len(order))
	for _, name := range order {
		l := lines[name]
		out = append(out, fmt.Sprintf("%s x%d - %d gold", name, l.qty, s.BuyPrice(l.item)))
	}
	return out
}
