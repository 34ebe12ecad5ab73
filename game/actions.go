package game

import "fmt"

// RejectReason explains why an action was refused.
type RejectReason int

const (
	NotOwner RejectReason = iota + 1
	NotAdjacent
	InsufficientGold
	CityAlreadyExists
	InvalidCoordinate
	ZeroTroopsCommitted
)

func (r RejectReason) String() string {
	switch r {
	case NotOwner:
		return "not owner"
	case NotAdjacent:
		return "not adjacent"
	case InsufficientGold:
		return "insufficient gold"
	case CityAlreadyExists:
		return "city already exists"
	case InvalidCoordinate:
		return "invalid coordinate"
	case ZeroTroopsCommitted:
		return "zero troops committed"
	default:
		return fmt.Sprintf("reject(%d)", int(r))
	}
}

// Reject is returned for any action whose preconditions fail. A rejected action
// never modifies the world.
type Reject struct {
	Reason RejectReason
	Detail string
}

func (r *Reject) Error() string {
	if r.Detail == "" {
		return "rejected: " + r.Reason.String()
	}
	return "rejected: " + r.Reason.String() + ": " + r.Detail
}

// Is matches any Reject carrying the same reason, so errors.Is(err, ErrNotOwner)
// works regardless of the detail text.
func (r *Reject) Is(target error) bool {
	t, ok := target.(*Reject)
	return ok && t.Reason == r.Reason
}

var (
	ErrNotOwner            = &Reject{Reason: NotOwner}
	ErrNotAdjacent         = &Reject{Reason: NotAdjacent}
	ErrInsufficientGold    = &Reject{Reason: InsufficientGold}
	ErrCityAlreadyExists   = &Reject{Reason: CityAlreadyExists}
	ErrInvalidCoordinate   = &Reject{Reason: InvalidCoordinate}
	ErrZeroTroopsCommitted = &Reject{Reason: ZeroTroopsCommitted}
)

func reject(reason RejectReason, format string, args ...any) *Reject {
	return &Reject{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// checkAssault runs the checks shared by land and naval attacks.
func checkAssault(w *World, attacker int, from, to Coord, troops int) error {
	if !w.Grid.InBounds(from) || !w.Grid.InBounds(to) {
		return reject(InvalidCoordinate, "%v -> %v is off the %dx%d grid", from, to, w.Grid.Size, w.Grid.Size)
	}
	if troops <= 0 {
		return reject(ZeroTroopsCommitted, "committed %d troops", troops)
	}
	if _, ok := w.Player(attacker); !ok || w.Owner(from) != attacker {
		return reject(NotOwner, "player %d does not own %v", attacker, from)
	}
	if !w.Grid.IsLand(to) {
		return reject(InvalidCoordinate, "%v is sea", to)
	}
	if w.Owner(to) == attacker {
		return reject(InvalidCoordinate, "%v already belongs to player %d", to, attacker)
	}
	return nil
}

// Attack validates and resolves an assault of troops from an owned cell on an
// orthogonally adjacent land cell.
func Attack(w *World, attacker int, from, to Coord, troops int) (AttackOutcome, error) {
	if err := checkAssault(w, attacker, from, to, troops); err != nil {
		return AttackOutcome{}, err
	}
	if !from.Adjacent(to) {
		return AttackOutcome{}, reject(NotAdjacent, "%v does not border %v", from, to)
	}
	return ResolveAttack(w, attacker, from, to, troops), nil
}

// NavalAttack ships troops across the sea to a land cell that cannot be reached
// over land, within the naval range. The boat is paid for before the assault.
func NavalAttack(w *World, attacker int, from, to Coord, troops int) (AttackOutcome, error) {
	if err := checkAssault(w, attacker, from, to, troops); err != nil {
		return AttackOutcome{}, err
	}
	if from.Distance(to) > w.Rules.NavalRange {
		return AttackOutcome{}, reject(NotAdjacent, "%v is beyond naval range %d of %v", to, w.Rules.NavalRange, from)
	}
	if !w.NeedsBoat(from, to) {
		return AttackOutcome{}, reject(NotAdjacent, "%v is reachable over land from %v", to, from)
	}
	p, _ := w.Player(attacker)
	if p.Gold < w.Rules.BoatCost {
		return AttackOutcome{}, reject(InsufficientGold, "boat costs %d, player %d has %d", w.Rules.BoatCost, attacker, p.Gold)
	}
	p.Gold -= w.Rules.BoatCost
	return resolve(w, attacker, from, to, troops, true), nil
}

// BuildCity founds a city on an owned cell and charges its cost.
func BuildCity(w *World, player int, cell Coord) error {
	if !w.Grid.InBounds(cell) {
		return reject(InvalidCoordinate, "%v is off the %dx%d grid", cell, w.Grid.Size, w.Grid.Size)
	}
	p, ok := w.Player(player)
	if !ok || w.Owner(cell) != player {
		return reject(NotOwner, "player %d does not own %v", player, cell)
	}
	if _, exists := w.Cities[cell]; exists {
		return reject(CityAlreadyExists, "%v already has a city", cell)
	}
	if p.Gold < w.Rules.CityCost {
		return reject(InsufficientGold, "city costs %d, player %d has %d", w.Rules.CityCost, player, p.Gold)
	}

	p.Gold -= w.Rules.CityCost
	w.Cities[cell] = City{Owner: player}
	w.record(CityEvent, "%s founded a city at %v", p.Name, cell)
	return nil
}
