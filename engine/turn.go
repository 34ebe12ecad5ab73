package engine

import (
	"time"

	"github.com/Alex12062012/Call-of-War-2.0/agent"
	"github.com/Alex12062012/Call-of-War-2.0/experiments/metrics"
	"github.com/Alex12062012/Call-of-War-2.0/game"
)

// TurnSummary reports the effects of one AdvanceTurn.
type TurnSummary struct {
	Turn            int // turn counter after the advance
	HumanIncome     int
	HumanProduction int
	Decisions       []agent.Decision
	Standings       []game.Standing
	Winner          int // NoOwner while the game goes on
	Hash            game.StateHash
	Metric          metrics.TurnMetric
}

// Attack is the human's land attack, applied immediately.
func (e *Engine) Attack(from, to game.Coord, troops int) (game.AttackOutcome, error) {
	out, err := game.Attack(e.World, game.HumanID, from, to, troops)
	if err != nil {
		return out, err
	}
	e.metrics.AddAttack(out.Won, false)
	return out, nil
}

// NavalAttack is the human's attack across the sea, applied immediately.
func (e *Engine) NavalAttack(from, to game.Coord, troops int) (game.AttackOutcome, error) {
	out, err := game.NavalAttack(e.World, game.HumanID, from, to, troops)
	if err != nil {
		return out, err
	}
	e.metrics.AddAttack(out.Won, true)
	return out, nil
}

// BuildCity founds a city for the human, applied immediately.
func (e *Engine) BuildCity(cell game.Coord) error {
	if err := game.BuildCity(e.World, game.HumanID, cell); err != nil {
		return err
	}
	e.metrics.AddCity()
	return nil
}

// AdvanceTurn ends the current turn: the human's income and production, then
// one policy step per bot in registry order. The turn counter increments and
// the history is trimmed to its cap.
func (e *Engine) AdvanceTurn() TurnSummary {
	w := e.World
	summary := TurnSummary{}

	for _, p := range w.Players {
		if p.IsBot || e.autopilot {
			d := e.Policy.TakeTurn(w, p.ID)
			e.track(d)
			summary.Decisions = append(summary.Decisions, d)
			if p.ID == game.HumanID {
				summary.HumanIncome, summary.HumanProduction = d.Gold, d.Troops
			}
			continue
		}
		summary.HumanIncome, summary.HumanProduction = w.ApplyIncome(p.ID)
	}

	w.Turn++
	w.TrimHistory()

	summary.Turn = w.Turn
	summary.Standings = game.Standings(w)
	summary.Winner = game.Winner(w)
	summary.Hash = w.Hash()
	summary.Metric = e.metrics.Complete()
	e.metrics.Start(w.Turn)

	e.logger.Debug().
		Int("turn", summary.Turn).
		Int("human_income", summary.HumanIncome).
		Int("winner", summary.Winner).
		Uint64("hash", uint64(summary.Hash)).
		Msg("turn advanced")
	return summary
}

func (e *Engine) track(d agent.Decision) {
	switch d.Action {
	case agent.Attack:
		e.metrics.AddAttack(d.Outcome.Won, d.Outcome.Naval)
	case agent.Build:
		e.metrics.AddCity()
	default:
		e.metrics.AddIdle()
	}
}

// Run advances turns until a single player holds all territory or maxTurns
// turns have been played.
func (e *Engine) Run(maxTurns int) (int, metrics.GameMetric, []metrics.TurnMetric) {
	start := time.Now()
	winner := game.NoOwner
	var turns []metrics.TurnMetric

	e.logger.Info().Msgf("running up to %d turns", maxTurns)
	for i := 0; i < maxTurns && winner == game.NoOwner; i++ {
		summary := e.AdvanceTurn()
		winner = summary.Winner
		turns = append(turns, summary.Metric)
	}

	gameMetric := metrics.GameMetric{
		Players:    len(e.World.Players),
		GridSide:   e.World.Grid.Size,
		Winner:     winner,
		StartTime:  start,
		EndTime:    time.Now(),
		Duration:   time.Since(start),
		TotalTurns: len(turns),
	}
	if winner != game.NoOwner {
		e.logger.Info().Msgf("%s won after %d turns", e.World.PlayerName(winner), len(turns))
	} else {
		e.logger.Info().Msgf("stopped after %d turns without a winner", len(turns))
	}
	return winner, gameMetric, turns
}
