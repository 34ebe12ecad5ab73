package main

import (
	"context"
	"flag"
	"os"

	"github.com/Alex12062012/Call-of-War-2.0/config"
	"github.com/Alex12062012/Call-of-War-2.0/engine"
	"github.com/Alex12062012/Call-of-War-2.0/experiments"
	"github.com/Alex12062012/Call-of-War-2.0/experiments/metrics"
	"github.com/Alex12062012/Call-of-War-2.0/game"
	"github.com/Alex12062012/Call-of-War-2.0/logger"
	"github.com/Alex12062012/Call-of-War-2.0/persistence"
	"github.com/Alex12062012/Call-of-War-2.0/session"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	mode := flag.String("mode", "simulate", "simulate, resume, terrain or aggression")
	sessionKey := flag.String("session", "", "Session key to resume")
	turns := flag.Int("turns", 0, "Turns to play (0 uses the config)")
	games := flag.Int("games", experiments.NumGames, "Games per experiment config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Init("info", true)
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(cfg.LogLevel, cfg.LogPretty)
	if *turns > 0 {
		cfg.MaxTurns = *turns
	}

	switch *mode {
	case "simulate", "resume":
		err = simulate(cfg, *mode == "resume", *sessionKey)
	case "terrain", "aggression":
		err = experiment(cfg, *mode, *games)
	default:
		log.Error().Msgf("unknown mode %q", *mode)
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("mode", *mode).Msg("run failed")
	}
}

// simulate plays an autopiloted game, new or restored, and saves it.
func simulate(cfg config.Config, resume bool, key string) error {
	ctx := context.Background()

	store, err := persistence.Open(cfg.Store.Backend, cfg.Store.Target(), cfg.Store.TTL)
	if err != nil {
		return err
	}
	defer store.Close()
	registry := session.NewRegistry(store)

	collector := metrics.NewCollector()
	options := []engine.Option{
		engine.WithAutopilot(),
		engine.WithMetrics(collector),
		engine.WithLogger(logger.Component("simulation")),
	}
	seed := game.ResolveSeed(cfg.Seed)
	options = append(options, engine.WithSeed(seed))

	if resume {
		if err := registry.Restore(ctx, key, options...); err != nil {
			return err
		}
	} else {
		options = append(options, engine.WithRules(cfg.Rules), engine.WithTerrain(cfg.Terrain))
		key, err = registry.Create(cfg.PlayerName, cfg.Players, cfg.Rules.GridSide, options...)
		if err != nil {
			return err
		}
	}

	var gameMetric metrics.GameMetric
	var turnMetrics []metrics.TurnMetric
	err = registry.Do(key, func(e *engine.Engine) error {
		_, gameMetric, turnMetrics = e.Run(cfg.MaxTurns)
		return nil
	})
	if err != nil {
		return err
	}
	gameMetric.Seed = seed
	gameMetric.Terrain = string(cfg.Terrain)

	if err := registry.Save(ctx, key); err != nil {
		return err
	}

	writer, err := metrics.NewWriter(cfg.MetricsDir, "simulation")
	if err != nil {
		return err
	}
	if err := writer.WriteGameRecords([]metrics.GameRecord{{ID: 1, GameMetric: gameMetric}}); err != nil {
		return err
	}
	turnRecords := make([]metrics.TurnRecord, len(turnMetrics))
	for i, tm := range turnMetrics {
		turnRecords[i] = metrics.TurnRecord{Game: 1, TurnMetric: tm}
	}
	if err := writer.WriteTurnRecords(turnRecords); err != nil {
		return err
	}

	log.Info().
		Str("session", key).
		Int("winner", gameMetric.Winner).
		Int("turns", gameMetric.TotalTurns).
		Str("metrics", writer.Dir()).
		Msg("simulation finished")
	return nil
}

func experiment(cfg config.Config, name string, games int) error {
	s := experiments.Settings{
		Root:     cfg.MetricsDir,
		Rules:    cfg.Rules,
		MaxTurns: cfg.MaxTurns,
		Games:    games,
		Seed:     cfg.Seed,
	}
	var err error
	switch name {
	case "terrain":
		_, err = experiments.RunTerrainExperiment(s, cfg.Players)
	case "aggression":
		_, err = experiments.RunAggressionExperiment(s, cfg.Players)
	}
	return err
}
