package game

import (
	"fmt"
	"strings"
)

// IO is the player's terminal: Prompt blocks for one line of input, Show
// prints narration.
type IO interface {
	Prompt(text string) (string, error)
	Show(text string)
}

// Engine runs battles and quests for one player at a time.
type Engine struct {
	Campaign *Campaign
	Rand     Rand
	IO       IO
}

// NewEngine returns an engine backed by crypto/rand.
func NewEngine(c *Campaign, io IO) *Engine {
	if c == nil {
		c = DefaultCampaign()
	}
	return &Engine{Campaign: c, Rand: CryptoRand{}, IO: io}
}

func (e *Engine) showf(format string, args ...any) {
	e.IO.Show(fmt.Sprintf(format, args...))
}

func (e *Engine) prompt(text string) (string, error) {
	s, err := e.IO.Prompt(text)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

func parseAction(s string) (Action, bool) {
	switch strings.TrimSpace(s) {
	case "1":
		return ActionAttack, true
	case "2":
		return ActionCastSpell, true
	case "3":
		return ActionDefend, true
	case "4":
		return ActionUseItem, true
	case "5":
		return ActionFlee, true
	default:
		return 0, false
	}
}
