package game

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed campaign.yaml
var defaultCampaignYAML []byte

// Campaign is the narrative content of the game: the opening story, the
// enemy names drawn for each stage, and the quests on offer.
type Campaign struct {
	Title   string   `yaml:"title"`
	Story   string   `yaml:"story"`
	Enemies []string `yaml:"enemies"`
	Quests  []Quest  `yaml:"quests"`
}

// Quest is a one-shot side encounter.
type Quest struct {
	Title         string  `yaml:"title"`
	Text          string  `yaml:"text"`
	SuccessText   string  `yaml:"successText"`
	SuccessChance float64 `yaml:"successChance"`
	Experience    int     `yaml:"experience"`
}

var (
	defaultEnemies = []string{"Goblin", "Dark Mage", "Imp", "Demon Servant"}
	defaultQuest   = Quest{
		Title:         "The Lost Page",
		Text:          "You must retrieve a lost grimoire page from the cursed library.",
		SuccessText:   "You found the grimoire page.",
		SuccessChance: 0.7,
		Experience:    50,
	}
)

// LoadCampaign loads a campaign from a YAML file.
func LoadCampaign(path string) (*Campaign, error) {
	cleanPath := filepath.Clean(path)
	b, err := os.ReadFile(cleanPath) //nolint:gosec // path comes from local config
	if err != nil {
		return nil, err
	}
	return parseCampaign(b)
}

// DefaultCampaign returns the built-in campaign.
func DefaultCampaign() *Campaign {
	c, err := parseCampaign(defaultCampaignYAML)
	if err != nil {
		panic(fmt.Sprintf("game: embedded campaign: %v", err))
	}
	return c
}

func parseCampaign(b []byte) (*Campaign, error) {
	var c Campaign
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	if len(c.Enemies) == 0 {
		c.Enemies = append([]string(nil), defaultEnemies...)
	}
	if len(c.Quests) == 0 {
		c.Quests = []Quest{defaultQuest}
	}
	for i := range c.Quests {
		q := &c.Quests[i]
		if q.SuccessChance < 0 || q.SuccessChance > 1 {
			return nil, fmt.Errorf("quest %d (%q): success chance %v outside [0,1]", i, q.Title, q.SuccessChance)
		}
		// Unset fields fall back to the defaults.
		if q.SuccessChance == 0 {
			q.SuccessChance = defaultQuest.SuccessChance
		}
		if q.Experience == 0 {
			q.Experience = defaultQuest.Experience
		}
		if q.SuccessText == "" {
			q.SuccessText = defaultQuest.SuccessText
		}
	}
	return &c, nil
}
