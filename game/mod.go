package game

import (
	"math/rand"
	"time"

	"github.com/Alex12062012/Call-of-War-2.0/meta"
)

const (
	// NoOwner marks an unclaimed cell.
	NoOwner = -1
	// HumanID is the registry index of the human-controlled player.
	HumanID = meta.HUMAN_ID
)

type StateHash uint64

// Rand is the source of randomness used by terrain generation, combat and the
// bot policy. *rand.Rand satisfies it; tests inject fixed sources.
type Rand interface {
	Float64() float64
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// ResolveSeed returns seed, or a clock-derived seed when it is zero, so callers
// can record the value a game actually ran with.
func ResolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// NewRand returns a seeded source. A zero seed picks one from the clock.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(ResolveSeed(seed)))
}
