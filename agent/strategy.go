package agent

import (
	"github.com/Alex12062012/Call-of-War-2.0/game"
	"github.com/Alex12062012/Call-of-War-2.0/utils"
)

// BuildStrategy founds a city with probability Rules.BotBuildChance. The draw
// is taken on every call so the random stream does not depend on the bot's
// treasury.
type BuildStrategy struct{}

func (BuildStrategy) Name() string { return "build" }

func (BuildStrategy) Apply(w *game.World, bot int) (Decision, bool) {
	if w.Rand().Float64() >= w.Rules.BotBuildChance {
		return Decision{}, false
	}
	p, ok := w.Player(bot)
	if !ok || p.Gold < w.Rules.CityCost {
		return Decision{}, false
	}
	site, ok := frontierSite(w, bot)
	if !ok {
		return Decision{}, false
	}
	if err := game.BuildCity(w, bot, site); err != nil {
		return Decision{}, false
	}
	return Decision{Action: Build, Cell: site}, true
}

// frontierSite picks the owned cell without a city that borders the most land
// not owned by bot. Ties go to the first cell in row-major order.
func frontierSite(w *game.World, bot int) (game.Coord, bool) {
	best, bestScore := game.Coord{}, -1
	for _, c := range w.OwnedCells(bot) {
		if _, taken := w.Cities[c]; taken {
			continue
		}
		score := 0
		for _, n := range c.Neighbors() {
			if w.Grid.IsLand(n) && w.Owner(n) != bot {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, bestScore >= 0
}

// AttackStrategy launches the first attack with a comfortable edge: owned
// cells in row-major order, neighbours up, down, left, right.
type AttackStrategy struct{}

func (AttackStrategy) Name() string { return "attack" }

func (AttackStrategy) Apply(w *game.World, bot int) (Decision, bool) {
	r := w.Rules
	for _, from := range w.OwnedCells(bot) {
		garrison := w.Troops(from)
		if garrison <= r.BotAttackThreshold {
			continue
		}
		for _, to := range from.Neighbors() {
			if !w.Grid.IsLand(to) {
				continue
			}
			owner := w.Owner(to)
			if owner == bot {
				continue
			}
			defenders := r.NeutralTroops
			if owner != game.NoOwner {
				defenders = w.Troops(to)
			}
			if float64(garrison) <= r.BotAttackEdge*float64(defenders) {
				continue
			}

			committed := utils.AtLeast(utils.Fraction(garrison, r.BotCommitFraction), 1)
			outcome := game.ResolveAttack(w, bot, from, to, committed)
			return Decision{Action: Attack, Cell: from, Target: to, Outcome: &outcome}, true
		}
	}
	return Decision{}, false
}
