package game

import (
	"github.com/Alex12062012/Call-of-War-2.0/utils"
	"github.com/rs/zerolog/log"
)

// AttackOutcome describes one resolved assault.
type AttackOutcome struct {
	Attacker        int
	Defender        int // previous owner of the target, NoOwner if unclaimed
	From            Coord
	To              Coord
	Committed       int
	AttackStrength  float64
	DefenseStrength float64
	Won             bool
	CityRazed       bool
	Naval           bool
}

// ResolveAttack settles an assault from an owned cell on a neighbouring cell.
// Input is assumed validated (see Attack); the only effects are the mutation of
// w and the draws from its random source. Exactly one event is recorded.
func ResolveAttack(w *World, attacker int, from, to Coord, committed int) AttackOutcome {
	return resolve(w, attacker, from, to, committed, false)
}

func resolve(w *World, attacker int, from, to Coord, committed int, naval bool) AttackOutcome {
	r := w.Rules
	src := w.Grid.At(from)
	dst := w.Grid.At(to)

	committed = utils.Clamp(committed, 0, src.Troops)

	defenders := r.NeutralTroops
	if dst.Claimed() {
		defenders = dst.Troops
	}

	out := AttackOutcome{
		Attacker:        attacker,
		Defender:        dst.Owner,
		From:            from,
		To:              to,
		Committed:       committed,
		AttackStrength:  float64(committed) * multiplier(w.rnd, 1, r.AttackVariance),
		DefenseStrength: float64(defenders) * multiplier(w.rnd, 1+r.DefenseBonus, r.DefenseVariance),
		Naval:           naval,
	}
	out.Won = out.AttackStrength > out.DefenseStrength

	kind := AttackEvent
	if naval {
		kind = NavalEvent
	}

	if out.Won {
		src.Troops = utils.AtLeast(src.Troops-utils.Fraction(committed, r.WinSourceLoss), 0)
		dst.Owner = attacker
		dst.Troops = utils.AtLeast(utils.Fraction(committed, r.WinGarrison), 0)
		if city, ok := w.Cities[to]; ok && city.Owner != attacker {
			delete(w.Cities, to)
			out.CityRazed = true
		}
		if out.CityRazed {
			w.record(kind, "%s conquered %v from %s and razed its city", w.PlayerName(attacker), to, w.PlayerName(out.Defender))
		} else {
			w.record(kind, "%s conquered %v from %s", w.PlayerName(attacker), to, w.PlayerName(out.Defender))
		}
	} else {
		src.Troops = utils.AtLeast(src.Troops-utils.Fraction(committed, r.LossSourceLoss), 0)
		if dst.Claimed() {
			dst.Troops = utils.AtLeast(dst.Troops-utils.Fraction(committed, r.LossDefenderLoss), 0)
		}
		w.record(kind, "%s failed to take %v from %s", w.PlayerName(attacker), to, w.PlayerName(out.Defender))
	}

	log.Debug().
		Int("attacker", attacker).
		Int("defender", out.Defender).
		Stringer("from", from).
		Stringer("to", to).
		Int("committed", committed).
		Float64("attack", out.AttackStrength).
		Float64("defense", out.DefenseStrength).
		Bool("won", out.Won).
		Bool("naval", naval).
		Msg("attack resolved")

	return out
}

// multiplier draws uniformly from [centre-spread, centre+spread].
func multiplier(rnd Rand, centre, spread float64) float64 {
	return centre + spread*(2*rnd.Float64()-1)
}
