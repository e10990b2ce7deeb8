// Package entity provides the character records kept on a game's roster.
package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// Class represents an adventurer's class.
type Class int

const (
	ClassWarrior Class = iota
	ClassRogue
	ClassWizard
	ClassCleric
)

// Classes lists every playable class in display order.
var Classes = []Class{ClassWarrior, ClassRogue, ClassWizard, ClassCleric}

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassWarrior:
		return "Warrior"
	case ClassRogue:
		return "Rogue"
	case ClassWizard:
		return "Wizard"
	case ClassCleric:
		return "Cleric"
	default:
		return "Unknown"
	}
}

// ID returns the class identifier used in save files.
func (c Class) ID() string {
	switch c {
	case ClassWarrior:
		return "warrior"
	case ClassRogue:
		return "rogue"
	case ClassWizard:
		return "wizard"
	case ClassCleric:
		return "cleric"
	default:
		return "unknown"
	}
}

// Symbol returns the display symbol for a class.
func (c Class) Symbol() rune {
	switch c {
	case ClassWarrior:
		return 'W'
	case ClassRogue:
		return 'R'
	case ClassWizard:
		return 'Z'
	case ClassCleric:
		return 'C'
	default:
		return '?'
	}
}

// ParseClass returns the class with the given identifier.
func ParseClass(id string) (Class, error) {
	for _, c := range Classes {
		if c.ID() == id {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown class %q", id)
}

// MarshalText encodes the class as its identifier.
func (c Class) MarshalText() ([]byte, error) {
	if c.ID() == "unknown" {
		return nil, fmt.Errorf("unknown class %d", int(c))
	}
	return []byte(c.ID()), nil
}

// UnmarshalText decodes a class identifier, rejecting unknown classes.
func (c *Class) UnmarshalText(text []byte) error {
	parsed, err := ParseClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Character is a single adventurer on the roster.
type Character struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Class      Class    `json:"class"`
	Level      int      `json:"level"`
	HP         int      `json:"hp"`
	MaxHP      int      `json:"maxHp"`
	MP         int      `json:"mp"`
	MaxMP      int      `json:"maxMp"`
	Attack     int      `json:"attack"`
	Defense    int      `json:"defense"`
	Magic      int      `json:"magic"`
	AbilityIDs []string `json:"abilities"`
}

type baseStats struct {
	hp, mp, attack, defense, magic int
	abilities                      []string
}

var classStats = map[Class]baseStats{
	ClassWarrior: {hp: 30, mp: 0, attack: 8, defense: 6, magic: 1, abilities: []string{"attack", "defend"}},
	ClassRogue:   {hp: 22, mp: 5, attack: 7, defense: 4, magic: 2, abilities: []string{"attack", "steal"}},
	ClassWizard:  {hp: 16, mp: 20, attack: 3, defense: 2, magic: 9, abilities: []string{"attack", "firebolt"}},
	ClassCleric:  {hp: 20, mp: 15, attack: 5, defense: 4, magic: 7, abilities: []string{"attack", "heal"}},
}

// NewCharacter creates a level 1 character with a fresh identifier and the
// base stats of its class.
func NewCharacter(name string, class Class) Character {
	stats := classStats[class]
	abilities := make([]string, len(stats.abilities))
	copy(abilities, stats.abilities)

	return Character{
		ID:         uuid.NewString(),
		Name:       name,
		Class:      class,
		Level:      1,
		HP:         stats.hp,
		MaxHP:      stats.hp,
		MP:         stats.mp,
		MaxMP:      stats.mp,
		Attack:     stats.attack,
		Defense:    stats.defense,
		Magic:      stats.magic,
		AbilityIDs: abilities,
	}
}

// IsAlive returns true if the character has HP remaining.
func (c *Character) IsAlive() bool { return c.HP > 0 }

// TakeDamage reduces HP and returns actual damage taken.
func (c *Character) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > c.HP {
		actual = c.HP
	}
	c.HP -= actual
	return actual
}

// Heal restores HP and returns actual amount healed.
func (c *Character) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if c.HP+actual > c.MaxHP {
		actual = c.MaxHP - c.HP
	}
	c.HP += actual
	return actual
}

// Clone returns a copy that shares no slices with c.
func (c Character) Clone() Character {
	if c.AbilityIDs != nil {
		abilities := make([]string, len(c.AbilityIDs))
		copy(abilities, c.AbilityIDs)
		c.AbilityIDs = abilities
	}
	return c
}
