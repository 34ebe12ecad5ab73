package game

import (
	"errors"
	"fmt"
)

// Rules holds every tunable constant of the simulation. Combat formulas in
// particular are configuration rather than fixed law.
type Rules struct {
	GridSide int `yaml:"grid_side" json:"grid_side"`

	// Terrain generation
	MinBlobs              int     `yaml:"min_blobs" json:"min_blobs"`
	MaxBlobs              int     `yaml:"max_blobs" json:"max_blobs"`
	MinBlobRadius         int     `yaml:"min_blob_radius" json:"min_blob_radius"`
	MaxBlobRadius         int     `yaml:"max_blob_radius" json:"max_blob_radius"`
	CoastSkip             float64 `yaml:"coast_skip" json:"coast_skip"`
	SeaLevel              float64 `yaml:"sea_level" json:"sea_level"`
	NoiseScale            float64 `yaml:"noise_scale" json:"noise_scale"`
	MaxGenerationAttempts int     `yaml:"max_generation_attempts" json:"max_generation_attempts"`

	// Starting position
	InitialTroops int `yaml:"initial_troops" json:"initial_troops"`
	InitialGold   int `yaml:"initial_gold" json:"initial_gold"`
	NeutralTroops int `yaml:"neutral_troops" json:"neutral_troops"`

	// Economy
	IncomePerCell     int `yaml:"income_per_cell" json:"income_per_cell"`
	ProductionPerCell int `yaml:"production_per_cell" json:"production_per_cell"`
	CityBonus         int `yaml:"city_bonus" json:"city_bonus"`
	CityCost          int `yaml:"city_cost" json:"city_cost"`
	BoatCost          int `yaml:"boat_cost" json:"boat_cost"`
	NavalRange        int `yaml:"naval_range" json:"naval_range"`

	// Combat
	AttackVariance   float64 `yaml:"attack_variance" json:"attack_variance"`
	DefenseBonus     float64 `yaml:"defense_bonus" json:"defense_bonus"`
	DefenseVariance  float64 `yaml:"defense_variance" json:"defense_variance"`
	WinSourceLoss    float64 `yaml:"win_source_loss" json:"win_source_loss"`
	WinGarrison      float64 `yaml:"win_garrison" json:"win_garrison"`
	LossSourceLoss   float64 `yaml:"loss_source_loss" json:"loss_source_loss"`
	LossDefenderLoss float64 `yaml:"loss_defender_loss" json:"loss_defender_loss"`

	// Bots
	BotBuildChance     float64 `yaml:"bot_build_chance" json:"bot_build_chance"`
	BotAttackThreshold int     `yaml:"bot_attack_threshold" json:"bot_attack_threshold"`
	BotAttackEdge      float64 `yaml:"bot_attack_edge" json:"bot_attack_edge"`
	BotCommitFraction  float64 `yaml:"bot_commit_fraction" json:"bot_commit_fraction"`

	HistoryCap int `yaml:"history_cap" json:"history_cap"`
}

func NewStandardRules() Rules {
	return Rules{
		GridSide: 40,

		MinBlobs:              6,
		MaxBlobs:              12,
		MinBlobRadius:         3,
		MaxBlobRadius:         8,
		CoastSkip:             0.15,
		SeaLevel:              0.45,
		NoiseScale:            0.12,
		MaxGenerationAttempts: 100,

		InitialTroops: 100,
		InitialGold:   200,
		NeutralTroops: 5,

		IncomePerCell:     2,
		ProductionPerCell: 2,
		CityBonus:         5,
		CityCost:          100,
		BoatCost:          50,
		NavalRange:        6,

		AttackVariance:   0.1,
		DefenseBonus:     0.1,
		DefenseVariance:  0.1,
		WinSourceLoss:    0.7,
		WinGarrison:      0.6,
		LossSourceLoss:   0.9,
		LossDefenderLoss: 0.3,

		BotBuildChance:     0.1,
		BotAttackThreshold: 10,
		BotAttackEdge:      1.5,
		BotCommitFraction:  0.5,

		HistoryCap: 50,
	}
}

var ErrInvalidRules = errors.New("invalid rules")

// Validate rejects configurations the engine cannot run with.
func (r Rules) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(r.GridSide >= 2, "grid_side must be at least 2, got %d", r.GridSide)
	check(r.MinBlobs >= 1 && r.MinBlobs <= r.MaxBlobs, "blob count range [%d, %d] is invalid", r.MinBlobs, r.MaxBlobs)
	check(r.MinBlobRadius >= 1 && r.MinBlobRadius <= r.MaxBlobRadius, "blob radius range [%d, %d] is invalid", r.MinBlobRadius, r.MaxBlobRadius)
	check(r.MaxGenerationAttempts >= 1, "max_generation_attempts must be positive, got %d", r.MaxGenerationAttempts)
	check(r.NoiseScale > 0, "noise_scale must be positive, got %v", r.NoiseScale)
	check(r.InitialTroops >= 0 && r.InitialGold >= 0 && r.NeutralTroops >= 0, "starting values must not be negative")
	check(r.IncomePerCell >= 0 && r.ProductionPerCell >= 0 && r.CityBonus >= 0, "economy rates must not be negative")
	check(r.CityCost >= 0 && r.BoatCost >= 0, "costs must not be negative")
	check(r.NavalRange >= 0, "naval_range must not be negative, got %d", r.NavalRange)
	check(r.AttackVariance >= 0 && r.AttackVariance < 1, "attack_variance must be in [0, 1), got %v", r.AttackVariance)
	check(r.DefenseVariance >= 0 && r.DefenseVariance < 1+r.DefenseBonus, "defense_variance must keep the defender multiplier positive")
	check(r.BotAttackThreshold >= 0, "bot_attack_threshold must not be negative, got %d", r.BotAttackThreshold)
	check(r.BotAttackEdge >= 0, "bot_attack_edge must not be negative, got %v", r.BotAttackEdge)
	check(r.HistoryCap >= 1, "history_cap must be at least 1, got %d", r.HistoryCap)

	for name, p := range map[string]float64{
		"coast_skip":          r.CoastSkip,
		"sea_level":           r.SeaLevel,
		"win_source_loss":     r.WinSourceLoss,
		"win_garrison":        r.WinGarrison,
		"loss_source_loss":    r.LossSourceLoss,
		"loss_defender_loss":  r.LossDefenderLoss,
		"bot_build_chance":    r.BotBuildChance,
		"bot_commit_fraction": r.BotCommitFraction,
	} {
		check(p >= 0 && p <= 1, "%s must be in [0, 1], got %v", name, p)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRules, errors.Join(errs...))
	}
	return nil
}
