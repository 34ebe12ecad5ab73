package engine

import (
	"fmt"

	"github.com/Alex12062012/Call-of-War-2.0/agent"
	"github.com/Alex12062012/Call-of-War-2.0/experiments/metrics"
	"github.com/Alex12062012/Call-of-War-2.0/game"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Option func(s *settings)

type settings struct {
	seed      int64
	rnd       game.Rand
	rules     game.Rules
	terrain   game.TerrainMode
	logger    zerolog.Logger
	metrics   metrics.Collector
	policy    []agent.Option
	autopilot bool
}

// WithSeed seeds the default random source. Ignored when WithRand is given.
func WithSeed(seed int64) Option {
	return func(s *settings) {
		s.seed = seed
	}
}

func WithRand(rnd game.Rand) Option {
	return func(s *settings) {
		if rnd != nil {
			s.rnd = rnd
		}
	}
}

func WithRules(rules game.Rules) Option {
	return func(s *settings) {
		s.rules = rules
	}
}

func WithTerrain(mode game.TerrainMode) Option {
	return func(s *settings) {
		if mode != "" {
			s.terrain = mode
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(s *settings) {
		if collector != nil {
			s.metrics = collector
		}
	}
}

// WithPolicy passes options to the bot policy.
func WithPolicy(options ...agent.Option) Option {
	return func(s *settings) {
		s.policy = append(s.policy, options...)
	}
}

// WithAutopilot lets the bot policy play the human seat too, for headless
// simulations.
func WithAutopilot() Option {
	return func(s *settings) {
		s.autopilot = true
	}
}

func newSettings(options []Option) settings {
	s := settings{ // Default values
		rules:   game.NewStandardRules(),
		terrain: game.BlobTerrain,
		logger:  log.Logger,
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(&s)
	}
	if s.rnd == nil {
		s.rnd = game.NewRand(s.seed)
	}
	return s
}

// Engine drives one game: it owns the world and plays the bots. It is not safe
// for concurrent use.
type Engine struct {
	World  *game.World
	Policy *agent.Policy

	logger    zerolog.Logger
	metrics   metrics.Collector
	autopilot bool
}

// NewGame generates terrain for gridSide and seats playerName plus
// playerCount-1 bots on it. A non-positive gridSide keeps the rules' side.
func NewGame(playerName string, playerCount, gridSide int, options ...Option) (*Engine, error) {
	s := newSettings(options)
	if playerCount < 1 {
		return nil, fmt.Errorf("player count must be positive, got %d", playerCount)
	}
	if gridSide > 0 {
		s.rules.GridSide = gridSide
	}
	if err := s.rules.Validate(); err != nil {
		return nil, err
	}

	grid, err := game.Generate(s.terrain, s.rules, playerCount, s.rnd)
	if err != nil {
		return nil, fmt.Errorf("failed to generate terrain: %w", err)
	}
	w, err := game.NewWorld(grid, playerName, playerCount, s.rules, s.rnd)
	if err != nil {
		return nil, fmt.Errorf("failed to seat players: %w", err)
	}

	e := build(w, s)
	e.logger.Info().
		Str("player", playerName).
		Int("players", playerCount).
		Int("grid_side", s.rules.GridSide).
		Str("terrain", string(s.terrain)).
		Int("land", grid.LandCount()).
		Msg("new game")
	return e, nil
}

// New wraps an existing world, e.g. one restored from a snapshot. Rules and
// terrain options are ignored; WithRand or WithSeed replace the world's random
// source only when given.
func New(w *game.World, options ...Option) *Engine {
	s := newSettings(options)
	if w.Rand() != nil && !overridesRand(options) {
		s.rnd = w.Rand()
	}
	w.SetRand(s.rnd)
	return build(w, s)
}

func overridesRand(options []Option) bool {
	probe := settings{}
	for _, option := range options {
		option(&probe)
	}
	return probe.rnd != nil || probe.seed != 0
}

func build(w *game.World, s settings) *Engine {
	e := &Engine{
		World:     w,
		Policy:    agent.NewPolicy(append([]agent.Option{agent.WithLogger(s.logger)}, s.policy...)...),
		logger:    s.logger.With().Str("component", "engine").Logger(),
		metrics:   s.metrics,
		autopilot: s.autopilot,
	}
	e.metrics.Start(w.Turn)
	return e
}
