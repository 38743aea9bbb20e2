package game

import "strings"

// Spell is a castable attack with a mana cost and an inclusive damage range.
type Spell struct {
	Name      string
	Cost      int
	DamageMin int
	DamageMax int
}

// DefaultSpell returns the single spell bound to an affinity.
func DefaultSpell(a Affinity) (Spell, bool) {
	switch a {
	case Fire:
		return Spell{Name: "Fireball", Cost: 10, DamageMin: 15, DamageMax: 25}, true
	case Water:
		return Spell{Name: "Water Jet", Cost: 10, DamageMin: 12, DamageMax: 22}, true
	case Wind:
		return Spell{Name: "Wind Slash", Cost: 8, DamageMin: 10, DamageMax: 20}, true
	case Earth:
		return Spell{Name: "Rock Smash", Cost: 12, DamageMin: 14, DamageMax: 24}, true
	case Lightning:
		return Spell{Name: "Lightning Strike", Cost: 10, DamageMin: 15, DamageMax: 25}, true
	default:
		return Spell{}, false
	}
}

// ItemKind is a consumable known to the battle engine.
type ItemKind int

const (
	ItemOther ItemKind = iota
	ItemHealthPotion
	ItemManaPotion
)

const (
	HealthPotion = "Health Potion"
	ManaPotion   = "Mana Potion"
)

// ItemKindOf maps an inventory name to its kind, ignoring case.
func ItemKindOf(name string) ItemKind {
	switch strings.ToLower(name) {
	case strings.ToLower(HealthPotion):
		return ItemHealthPotion
	case strings.ToLower(ManaPotion):
		return ItemManaPotion
	default:
		return ItemOther
	}
}

// Restore is the amount of hp or mana the item gives back.
func (k ItemKind) Restore() int {
	switch k {
	case ItemHealthPotion:
		return 30
	case ItemManaPotion:
		return 20
	default:
		return 0
	}
}

// DefaultInventory is the starting inventory and the fallback for saves without one.
func DefaultInventory() map[string]int {
	return map[string]int{HealthPotion: 2, ManaPotion: 1}
}
