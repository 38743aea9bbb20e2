package game

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/google/uuid"
)

const (
	attackMin   = 5
	attackMax   = 10
	fleeChance  = 0.5
	retryPrompt = "Do you want to restart this level or repeat the previous one? (restart/repeat): "
)

// combat is the transient state of one stage. None of it is persisted.
type combat struct {
	stage    Stage
	enemy    *Enemy
	defended bool
}

// Battle runs the three stages for p.Kingdom. It returns when every stage is
// won, when a flee succeeds, or after a defeat once the retry prompt has been
// answered. A defeat always ends the call: the restart/repeat answer only moves
// the stage pointer, and the player has to start another battle to use it.
func (e *Engine) Battle(ctx context.Context, p *PlayerState) (BattleResult, error) {
	res := BattleResult{ID: uuid.NewString()}
	log.Printf("battle %s: %s enters %s at level %d", res.ID, p.Name, p.Kingdom, p.Level)

	stage := 0
	for stage < len(Stages) {
		res.Stage = Stages[stage]
		e.showf("\n%s, you are entering the %s level battle in the %s kingdom!", p.Name, res.Stage, p.Kingdom)
		p.Refresh()

		c := &combat{stage: res.Stage, enemy: e.spawnEnemy(stage)}
		e.showf("A wild %s appears with %d HP!", c.enemy.Name, c.enemy.HP)

		for c.enemy.HP > 0 && p.HP > 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			e.showStatus(p, c.enemy)
			in, err := e.prompt("Enter action (1-5): ")
			if err != nil {
				return res, err
			}
			action, ok := parseAction(in)
			if !ok {
				e.IO.Show("Invalid action. Try again.")
				continue
			}

			fled, err := e.resolve(p, c, action)
			if err != nil {
				return res, err
			}
			if fled {
				res.Outcome = OutcomeFled
				return e.finish(res, p), nil
			}

			if c.enemy.HP <= 0 {
				e.showf("You defeated the %s!", c.enemy.Name)
				if c.stage == Elite {
					res.Sword = conquer(p)
					e.showf("Congratulations, %s! You've conquered the %s kingdom and earned a %s!", p.Name, p.Kingdom, res.Sword)
					if HasAllSwords(p) {
						res.WizardKing = true
						e.showf("Congratulations, %s! You are now the Wizard King!", p.Name)
					}
				}
				LevelUp(p)
				e.showf("%s leveled up to level %d!", p.Name, p.Level)
				break
			}

			e.enemyTurn(p, c)

			if p.HP <= 0 {
				e.IO.Show("You have been defeated!")
				choice, err := e.retryChoice(stage)
				if err != nil {
					return res, err
				}
				res.Retry = choice
				if choice == "repeat" {
					stage--
				}
				break
			}
		}

		if p.HP <= 0 {
			e.IO.Show("Recover and try again later...")
			res.Outcome = OutcomeDefeated
			return e.finish(res, p), nil
		}
		stage++
	}

	res.Outcome = OutcomeConquered
	return e.finish(res, p), nil
}

func (e *Engine) finish(res BattleResult, p *PlayerState) BattleResult {
	log.Printf("battle %s: %s %s at %s stage (level %d, swords %d)", res.ID, p.Name, res.Outcome, res.Stage, p.Level, len(p.SwordAwards))
	return res
}

func (e *Engine) spawnEnemy(stage int) *Enemy {
	names := e.Campaign.Enemies
	if len(names) == 0 {
		names = defaultEnemies
	}
	return &Enemy{
		Name:      names[e.Rand.Intn(len(names))],
		HP:        20 + 10*stage,
		AttackMin: 5 + stage,
		AttackMax: 10 + stage,
	}
}

func (e *Engine) showStatus(p *PlayerState, en *Enemy) {
	e.showf("\n%s's HP: %d/%d | Mana: %d/%d", p.Name, p.HP, p.MaxHP, p.Mana, p.MaxMana)
	e.showf("%s's HP: %d", en.Name, en.HP)
	e.IO.Show("Choose your action:\n1. Attack\n2. Cast Spell\n3. Defend\n4. Use Item\n5. Flee")
}

// resolve applies the player's action. It reports true when a flee succeeded.
func (e *Engine) resolve(p *PlayerState, c *combat, a Action) (bool, error) {
	switch a {
	case ActionAttack:
		dmg := rollRange(e.Rand, attackMin, attackMax) + p.Level
		c.enemy.HP -= dmg
		e.showf("You attack and deal %d damage!", dmg)
	case ActionCastSpell:
		c.enemy.HP -= e.castSpell(p)
	case ActionDefend:
		c.defended = true
		e.IO.Show("You brace yourself to reduce incoming damage.")
	case ActionUseItem:
		if err := e.useItem(p); err != nil {
			return false, err
		}
	case ActionFlee:
		if e.Rand.Float64() < fleeChance {
			e.IO.Show("You managed to flee from the battle!")
			return true, nil
		}
		e.IO.Show("Flee attempt failed!")
	}
	return false, nil
}

// castSpell spends mana on the affinity's spell and returns the damage dealt.
// Without enough mana nothing is spent and no damage is dealt.
func (e *Engine) castSpell(p *PlayerState) int {
	spell, ok := DefaultSpell(p.Affinity)
	if !ok {
		e.IO.Show("No default spell available for your magic type.")
		return 0
	}
	if p.Mana < spell.Cost {
		e.IO.Show("Not enough mana!")
		return 0
	}
	p.Mana -= spell.Cost
	dmg := rollRange(e.Rand, spell.DamageMin, spell.DamageMax)
	e.showf("%s casts %s for %d damage (cost %d mana)!", p.Name, spell.Name, dmg, spell.Cost)
	return dmg
}

func (e *Engine) useItem(p *PlayerState) error {
	if len(p.Inventory) == 0 {
		e.IO.Show("Your inventory is empty.")
		return nil
	}
	names := make([]string, 0, len(p.Inventory))
	for name := range p.Inventory {
		names = append(names, name)
	}
	sort.Strings(names)
	lines := []string{"Inventory:"}
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("- %s: %d", name, p.Inventory[name]))
	}
	e.IO.Show(strings.Join(lines, "\n"))

	choice, err := e.prompt("Enter the item name to use: ")
	if err != nil {
		return err
	}
	if p.Inventory[choice] <= 0 {
		e.IO.Show("You don't have that item.")
		return nil
	}
	switch kind := ItemKindOf(choice); kind {
	case ItemHealthPotion:
		p.Heal(kind.Restore())
		e.showf("You used a Health Potion and recovered %d HP!", kind.Restore())
	case ItemManaPotion:
		p.RestoreMana(kind.Restore())
		e.showf("You used a Mana Potion and restored %d mana!", kind.Restore())
	default:
		e.IO.Show("Item has no effect.")
	}
	p.Inventory[choice]--
	return nil
}

func (e *Engine) enemyTurn(p *PlayerState, c *combat) {
	dmg := rollRange(e.Rand, c.enemy.AttackMin, c.enemy.AttackMax)
	if c.defended {
		dmg /= 2
		c.defended = false
		e.IO.Show("Your defense reduces the incoming damage!")
	}
	p.HP -= dmg
	e.showf("%s attacks and deals %d damage!", c.enemy.Name, dmg)
}

func (e *Engine) retryChoice(stage int) (string, error) {
	for {
		in, err := e.prompt(retryPrompt)
		if err != nil {
			return "", err
		}
		switch choice := strings.ToLower(in); {
		case choice == "restart":
			return choice, nil
		case choice == "repeat" && stage > 0:
			return choice, nil
		}
		e.IO.Show("Invalid choice. Please enter 'restart' or 'repeat'.")
	}
}
