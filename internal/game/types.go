package game

// Affinity is a player's elemental magic type, fixed at creation.
type Affinity string

const (
	Fire      Affinity = "Fire"
	Water     Affinity = "Water"
	Wind      Affinity = "Wind"
	Earth     Affinity = "Earth"
	Lightning Affinity = "Lightning"
)

// Affinities lists every affinity in menu order.
var Affinities = []Affinity{Fire, Water, Wind, Earth, Lightning}

// Kingdom is a conquest target.
type Kingdom string

const (
	Clover  Kingdom = "Clover"
	Diamond Kingdom = "Diamond"
	Heart   Kingdom = "Heart"
	Spade   Kingdom = "Spade"
)

// Kingdoms lists every kingdom in menu order.
var Kingdoms = []Kingdom{Clover, Diamond, Heart, Spade}

// Sword is the trophy awarded for conquering a kingdom.
type Sword string

const (
	DemonSlayer    Sword = "Demon Slayer"
	DemonDweller   Sword = "Demon Dweller"
	DemonDestroyer Sword = "Demon Destroyer"
	DemonMajestic  Sword = "Demon-Majestic"
	UnknownSword   Sword = "Unknown Sword"
)

// Stage is one of the three escalating battles fought per kingdom.
type Stage int

const (
	Ignite Stage = iota
	Illuminate
	Elite
)

// Stages lists the stages in the order they are fought.
var Stages = []Stage{Ignite, Illuminate, Elite}

func (s Stage) String() string {
	switch s {
	case Ignite:
		return "Ignite"
	case Illuminate:
		return "Illuminate"
	case Elite:
		return "Elite"
	default:
		return "Unknown"
	}
}

// PlayerState is everything persisted about a player between sessions.
// It is mutated in place by battles, quests and level ups.
type PlayerState struct {
	Name        string         `json:"name"`
	Affinity    Affinity       `json:"magic_type"`
	Password    string         `json:"password"`
	Level       int            `json:"level"`
	Experience  int            `json:"experience"`
	Spells      []string       `json:"spells"`
	KingdomsWon []Kingdom      `json:"kingdoms_won"`
	SwordAwards []Sword        `json:"sword_awards"`
	Kingdom     Kingdom        `json:"kingdom"`
	Magic       int            `json:"magic"`
	HP          int            `json:"hp"`
	MaxHP       int            `json:"max_hp"`
	Mana        int            `json:"mana"`
	MaxMana     int            `json:"max_mana"`
	Inventory   map[string]int `json:"inventory"`
}

// Enemy is the opponent of a single battle stage. It does not outlive the stage.
type Enemy struct {
	Name      string
	HP        int
	AttackMin int
	AttackMax int
}

// Action is a battle menu choice.
type Action int

const (
	ActionAttack Action = iota + 1
	ActionCastSpell
	ActionDefend
	ActionUseItem
	ActionFlee
)

// Outcome is how a kingdom battle ended.
type Outcome string

const (
	OutcomeConquered Outcome = "conquered"
	OutcomeFled      Outcome = "fled"
	OutcomeDefeated  Outcome = "defeated"
)

// BattleResult summarizes a finished kingdom battle.
type BattleResult struct {
	ID         string
	Outcome    Outcome
	Stage      Stage  // stage being fought when the battle ended
	Sword      Sword  // set only when the Elite stage was won
	WizardKing bool   // all four swords are held
	Retry      string // "restart" or "repeat" after a defeat
}

// QuestResult summarizes a quest prompt.
type QuestResult struct {
	Title    string
	Accepted bool
	Success  bool
	Gained   int
}
