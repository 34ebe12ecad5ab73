package game

import (
	"errors"
	"fmt"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/rs/zerolog/log"
)

// TerrainMode selects the terrain generation algorithm.
type TerrainMode string

const (
	// BlobTerrain stamps elliptical continents with ragged coasts.
	BlobTerrain TerrainMode = "blobs"
	// NoiseTerrain thresholds layered simplex noise.
	NoiseTerrain TerrainMode = "noise"
)

var ErrGenerationFailed = errors.New("terrain generation failed")

// Generate produces terrain with at least one land cell per player using the
// given mode. Each failed attempt is discarded and regenerated from scratch, up
// to Rules.MaxGenerationAttempts times.
func Generate(mode TerrainMode, rules Rules, players int, rnd Rand) (*Grid, error) {
	var generate func(Rules, Rand) *Grid
	switch mode {
	case BlobTerrain, "":
		generate = stampContinents
	case NoiseTerrain:
		generate = noiseContinents
	default:
		return nil, fmt.Errorf("%w: unknown terrain mode %q", ErrGenerationFailed, mode)
	}

	for attempt := 1; attempt <= rules.MaxGenerationAttempts; attempt++ {
		g := generate(rules, rnd)
		land := g.LandCount()
		if land >= players {
			return g, nil
		}
		log.Debug().Msgf("terrain attempt %d produced %d land cells for %d players", attempt, land, players)
	}
	return nil, fmt.Errorf("%w: fewer than %d land cells after %d attempts", ErrGenerationFailed, players, rules.MaxGenerationAttempts)
}

// GenerateTerrain is Generate with continent stamping.
func GenerateTerrain(rules Rules, players int, rnd Rand) (*Grid, error) {
	return Generate(BlobTerrain, rules, players, rnd)
}

// GenerateNoiseTerrain is Generate with thresholded simplex noise.
func GenerateNoiseTerrain(rules Rules, players int, rnd Rand) (*Grid, error) {
	return Generate(NoiseTerrain, rules, players, rnd)
}

// stampContinents marks cells inside randomly placed ellipses as land, skipping
// a fraction of them to roughen the coastline.
func stampContinents(rules Rules, rnd Rand) *Grid {
	n := rules.GridSide
	g := NewGrid(n)

	blobs := between(rnd, rules.MinBlobs, rules.MaxBlobs)
	for i := 0; i < blobs; i++ {
		cx, cy := rnd.Intn(n), rnd.Intn(n)
		rx := between(rnd, rules.MinBlobRadius, rules.MaxBlobRadius)
		ry := between(rnd, rules.MinBlobRadius, rules.MaxBlobRadius)

		for y := max(0, cy-ry); y <= min(n-1, cy+ry); y++ {
			for x := max(0, cx-rx); x <= min(n-1, cx+rx); x++ {
				dx := float64(x-cx) / float64(rx)
				dy := float64(y-cy) / float64(ry)
				if math.Sqrt(dx*dx+dy*dy) >= 1 {
					continue
				}
				if rnd.Float64() < rules.CoastSkip {
					continue
				}
				g.Cells[y*n+x].Terrain = Land
			}
		}
	}
	return g
}

// noiseContinents thresholds octave simplex noise, fading towards the edges so
// the map is ringed by sea.
func noiseContinents(rules Rules, rnd Rand) *Grid {
	n := rules.GridSide
	g := NewGrid(n)
	noise := opensimplex.NewNormalized(int64(rnd.Intn(math.MaxInt32)))

	half := float64(n-1) / 2
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			elev := octaveNoise(noise, float64(x), float64(y), 4, rules.NoiseScale, 0.5)

			dx, dy := (float64(x)-half)/half, (float64(y)-half)/half
			falloff := 1 - math.Pow(math.Sqrt(dx*dx+dy*dy)/math.Sqrt2, 3)
			if falloff < 0 {
				falloff = 0
			}
			if elev*falloff > rules.SeaLevel {
				g.Cells[y*n+x].Terrain = Land
			}
		}
	}
	return g
}

func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// between draws uniformly from [lo, hi].
func between(rnd Rand, lo, hi int) int {
	return lo + rnd.Intn(hi-lo+1)
}
