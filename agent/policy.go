package agent

import (
	"fmt"

	"github.com/Alex12062012/Call-of-War-2.0/game"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Action int

const (
	Idle Action = iota
	Build
	Attack
)

func (a Action) String() string {
	switch a {
	case Idle:
		return "idle"
	case Build:
		return "build"
	case Attack:
		return "attack"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Decision records what a bot did with its turn.
type Decision struct {
	Bot     int
	Action  Action
	Cell    game.Coord          // city site, or source of the attack
	Target  game.Coord          // attack target
	Outcome *game.AttackOutcome // nil unless Action is Attack
	Gold    int                 // passive gold income
	Troops  int                 // passive troop production
}

// Strategy is one discretionary branch of the bot policy. Apply returns false,
// without touching the world, when the branch does not fire.
type Strategy interface {
	Name() string
	Apply(w *game.World, bot int) (Decision, bool)
}

type Option func(p *Policy)

// WithStrategies replaces the default strategy order.
func WithStrategies(strategies ...Strategy) Option {
	return func(p *Policy) {
		if len(strategies) > 0 {
			p.strategies = strategies
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(p *Policy) {
		p.logger = logger.With().Str("component", "agent").Logger()
	}
}

// Policy is the greedy, local bot controller: passive income followed by the
// first strategy that fires.
type Policy struct {
	strategies []Strategy
	logger     zerolog.Logger
}

func NewPolicy(options ...Option) *Policy {
	p := &Policy{ // Default values
		strategies: []Strategy{BuildStrategy{}, AttackStrategy{}},
		logger:     log.Logger.With().Str("component", "agent").Logger(),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Strategies lists the strategy names in priority order.
func (p *Policy) Strategies() []string {
	names := make([]string, len(p.strategies))
	for i, s := range p.strategies {
		names[i] = s.Name()
	}
	return names
}

// TakeTurn plays one turn for bot: income is always applied, then at most one
// discretionary action.
func (p *Policy) TakeTurn(w *game.World, bot int) Decision {
	gold, troops := w.ApplyIncome(bot)

	decision := Decision{Bot: bot, Action: Idle}
	for _, s := range p.strategies {
		if d, ok := s.Apply(w, bot); ok {
			decision = d
			break
		}
	}
	decision.Bot = bot
	decision.Gold = gold
	decision.Troops = troops

	event := p.logger.Debug().
		Int("turn", w.Turn).
		Int("bot", bot).
		Stringer("action", decision.Action).
		Int("gold", gold).
		Int("troops", troops)
	if decision.Action != Idle {
		event = event.Stringer("cell", decision.Cell)
	}
	if decision.Outcome != nil {
		event = event.Stringer("target", decision.Target).Bool("won", decision.Outcome.Won)
	}
	event.Msg("bot turn")

	return decision
}
