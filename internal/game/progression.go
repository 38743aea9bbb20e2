package game

const (
	levelHPGain   = 10
	levelManaGain = 5
)

// LevelUp raises the level, grows max hp and mana, and fully restores both.
func LevelUp(p *PlayerState) {
	p.Level++
	p.MaxHP += levelHPGain
	p.MaxMana += levelManaGain
	p.Refresh()
}

// AwardSword returns the sword granted for conquering k.
func AwardSword(k Kingdom) Sword {
	switch k {
	case Clover:
		return DemonSlayer
	case Diamond:
		return DemonDweller
	case Heart:
		return DemonDestroyer
	case Spade:
		return DemonMajestic
	default:
		return UnknownSword
	}
}

// HasAllSwords reports whether the set of awarded swords is exactly the four
// kingdom swords: the Wizard King condition.
func HasAllSwords(p *PlayerState) bool {
	held := make(map[Sword]bool, len(p.SwordAwards))
	for _, s := range p.SwordAwards {
		held[s] = true
	}
	if len(held) != len(Kingdoms) {
		return false
	}
	for _, k := range Kingdoms {
		if !held[AwardSword(k)] {
			return false
		}
	}
	return true
}

// AvailableKingdoms returns the kingdoms p has not conquered yet, in menu order.
func AvailableKingdoms(p *PlayerState) []Kingdom {
	out := make([]Kingdom, 0, len(Kingdoms))
	for _, k := range Kingdoms {
		if !p.HasConquered(k) {
			out = append(out, k)
		}
	}
	return out
}

// conquer records the Elite-stage victory for the player's current kingdom.
func conquer(p *PlayerState) Sword {
	sword := AwardSword(p.Kingdom)
	p.SwordAwards = append(p.SwordAwards, sword)
	p.KingdomsWon = append(p.KingdomsWon, p.Kingdom)
	return sword
}
