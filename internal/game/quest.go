package game

import (
	"context"
	"log"
	"strings"
)

// Quest offers a side quest. On acceptance the quest succeeds with its
// success chance and awards experience; nothing else about p changes.
func (e *Engine) Quest(ctx context.Context, p *PlayerState) (QuestResult, error) {
	if err := ctx.Err(); err != nil {
		return QuestResult{}, err
	}
	q := e.pickQuest()
	res := QuestResult{Title: q.Title}

	e.IO.Show("\nA mysterious quest appears!")
	e.IO.Show(q.Text)
	answer, err := e.prompt("Do you accept the quest? (yes/no): ")
	if err != nil {
		return res, err
	}
	if strings.ToLower(answer) != "yes" {
		e.IO.Show("You declined the quest.")
		return res, nil
	}

	res.Accepted = true
	e.IO.Show("You embark on the quest...")
	if e.Rand.Float64() < q.SuccessChance {
		res.Success = true
		res.Gained = q.Experience
		p.Experience += q.Experience
		e.showf("Quest successful! %s", q.SuccessText)
		e.showf("You gained %d experience points!", q.Experience)
	} else {
		e.IO.Show("Quest failed. Better luck next time.")
	}
	log.Printf("quest %q: %s success=%t experience=%d", q.Title, p.Name, res.Success, p.Experience)
	return res, nil
}

func (e *Engine) pickQuest() Quest {
	quests := e.Campaign.Quests
	switch len(quests) {
	case 0:
		return defaultQuest
	case 1:
		return quests[0]
	default:
		return quests[e.Rand.Intn(len(quests))]
	}
}
