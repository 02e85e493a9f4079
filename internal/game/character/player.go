package character

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/stat"
)

const (
	startingExpThreshold = 100
	statPointsPerLevel   = 2
)

// Level-up gains.
var (
	hpGain      = dice.MustParse("1d5+7")
	manaGain    = dice.MustParse("1d5+2")
	attackGain  = dice.MustParse("1d3")
	defenseGain = dice.MustParse("1d2")
)

// Player is a character that levels up and carries gold.
type Player struct {
	*Character
	experience int
	expToNext  int
	gold       int
	statPoints int
}

// NewPlayer creates a level 1 player with no experience or gold.
func NewPlayer(name string, s Stats) *Player {
	return &Player{
		Character: New(name, s),
		expToNext: startingExpThreshold,
	}
}

func (p *Player) Experience() int { return p.experience }
func (p *Player) ExpToNext() int  { return p.expToNext }
func (p *Player) Gold() int       { return p.gold }
func (p *Player) StatPoints() int { return p.statPoints }

// GainExperience adds exp and levels up as many times as it covers.
//
// Postcondition: Experience() < ExpToNext(); returns one message per level.
func (p *Player) GainExperience(exp int, roller *dice.Roller) []string {
	p.experience += exp
	var msgs []string
	for p.experience >= p.expToNext {
		msgs = append(msgs, p.LevelUp(roller))
	}
	return msgs
}

// LevelUp consumes one threshold of experience and raises the player's stats.
// The next threshold is 1.2 times the current one, truncated.
func (p *Player) LevelUp(roller *dice.Roller) string {
	p.experience -= p.expToNext
	p.level++
	p.expToNext = p.expToNext * 6 / 5

	hp := roller.Total(hpGain)
	mana := roller.Total(manaGain)
	p.maxHP += hp
	p.hp += hp
	p.maxMana += mana
	p.mana += mana
	p.baseAttack += roller.Total(attackGain)
	p.baseDefense += roller.Total(defenseGain)
	p.statPoints += statPointsPerLevel

	return fmt.Sprintf("%s leveled up to level %d!", p.name, p.level)
}

// AllocateStatPoint spends one stat point on an attribute. Raising max_hp or
// max_mana also raises the current value.
func (p *Player) AllocateStatPoint(s stat.Stat) bool {
	if p.statPoints <= 0 || !s.IsAttribute() {
		return false
	}
	p.adjust(s, 1)
	switch s {
	case stat.MaxHP:
		p.hp++
	case stat.MaxMana:
		p.mana++
	}
	p.statPoints--
	return true
}

// AddGold adds amount to the purse.
func (p *Player) AddGold(amount int) {
	p.gold += amount
}

// SpendGold deducts amount if the player can afford it.
func (p *Player) SpendGold(amount int) bool {
	if p.gold < amount {
		return false
	}
	p.gold -= amount
	return true
}
