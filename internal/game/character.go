package game

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	startHP    = 100
	startMana  = 50
	startMagic = 10
)

// NewPlayer returns a level 1 player with full hp and mana and the starting inventory.
func NewPlayer(name string, a Affinity, password string) *PlayerState {
	p := defaultPlayer()
	p.Name = name
	p.Affinity = a
	p.Password = password
	return p
}

func defaultPlayer() *PlayerState {
	return &PlayerState{
		Level:       1,
		Spells:      []string{},
		KingdomsWon: []Kingdom{},
		SwordAwards: []Sword{},
		Magic:       startMagic,
		HP:          startHP,
		MaxHP:       startHP,
		Mana:        startMana,
		MaxMana:     startMana,
		Inventory:   DefaultInventory(),
	}
}

// ParseAffinity capitalizes s ("fIRE" -> "Fire") and matches it against the known affinities.
func ParseAffinity(s string) (Affinity, bool) {
	a := Affinity(cases.Title(language.English).String(strings.TrimSpace(s)))
	for _, known := range Affinities {
		if a == known {
			return a, true
		}
	}
	return "", false
}

// CheckPassword compares the stored secret with the entered one.
func (p *PlayerState) CheckPassword(entered string) bool {
	return p.Password == entered
}

// Heal adds hp up to MaxHP and returns the amount actually gained.
func (p *PlayerState) Heal(n int) int {
	before := p.HP
	p.HP = min(p.HP+n, p.MaxHP)
	return p.HP - before
}

// RestoreMana adds mana up to MaxMana and returns the amount actually gained.
func (p *PlayerState) RestoreMana(n int) int {
	before := p.Mana
	p.Mana = min(p.Mana+n, p.MaxMana)
	return p.Mana - before
}

// Refresh fully restores hp and mana.
func (p *PlayerState) Refresh() {
	p.HP = p.MaxHP
	p.Mana = p.MaxMana
}

// HasConquered reports whether k is in KingdomsWon.
func (p *PlayerState) HasConquered(k Kingdom) bool {
	for _, won := range p.KingdomsWon {
		if won == k {
			return true
		}
	}
	return false
}

type playerJSON PlayerState

// UnmarshalJSON fills documented defaults for every field missing from data,
// so older or hand-edited saves load instead of failing.
func (p *PlayerState) UnmarshalJSON(data []byte) error {
	d := defaultPlayer()
	d.Inventory = nil
	if err := json.Unmarshal(data, (*playerJSON)(d)); err != nil {
		return err
	}
	if d.Inventory == nil {
		d.Inventory = DefaultInventory()
	}
	if d.Spells == nil {
		d.Spells = []string{}
	}
	if d.KingdomsWon == nil {
		d.KingdomsWon = []Kingdom{}
	}
	if d.SwordAwards == nil {
		d.SwordAwards = []Sword{}
	}
	*p = *d
	return nil
}
