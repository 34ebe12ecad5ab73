package game

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
)

type EventKind int

const (
	AttackEvent EventKind = iota
	NavalEvent
	CityEvent
)

var eventKindNames = []string{"attack", "naval", "city"}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is one human-readable history record.
type Event struct {
	Turn int
	Kind EventKind
	Text string
}

// World is the authoritative state of one game. It is not safe for concurrent
// use; callers serialize access per game.
type World struct {
	Grid    *Grid
	Players []Player
	Cities  map[Coord]City
	Turn    int
	History []Event
	Rules   Rules

	rnd Rand
}

var ErrNotEnoughLand = errors.New("not enough land to seat every player")

// NewWorld seats playerCount players (the human first, named playerName) on
// random land cells of grid. Start cells are popped from a shuffled pool of
// land coordinates, so no two players can share one.
func NewWorld(grid *Grid, playerName string, playerCount int, rules Rules, rnd Rand) (*World, error) {
	if playerCount < 1 {
		return nil, fmt.Errorf("player count must be positive, got %d", playerCount)
	}
	pool := grid.LandCoords()
	rnd.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	starts := make([]Coord, 0, playerCount)
	for i := 0; i < playerCount; i++ {
		if len(pool) == 0 {
			return nil, fmt.Errorf("%w: %d land cells for %d players", ErrNotEnoughLand, grid.LandCount(), playerCount)
		}
		starts = append(starts, pool[len(pool)-1])
		pool = pool[:len(pool)-1]
	}
	return NewWorldAt(grid, playerName, starts, rules, rnd)
}

// NewWorldAt seats one player per start coordinate, in order. Every start must
// be a distinct land cell. The rules' grid side is set to the grid's size.
func NewWorldAt(grid *Grid, playerName string, starts []Coord, rules Rules, rnd Rand) (*World, error) {
	if len(starts) == 0 {
		return nil, fmt.Errorf("no start positions")
	}
	rules.GridSide = grid.Size
	w := &World{
		Grid:    grid,
		Players: make([]Player, len(starts)),
		Cities:  make(map[Coord]City),
		Rules:   rules,
		rnd:     rnd,
	}
	seen := make(map[Coord]bool, len(starts))
	for id, start := range starts {
		if !grid.IsLand(start) {
			return nil, fmt.Errorf("start %v of player %d is not land", start, id)
		}
		if seen[start] {
			return nil, fmt.Errorf("start %v is shared by several players", start)
		}
		seen[start] = true

		p := Player{
			ID:    id,
			Name:  playerName,
			Color: playerColor(id),
			Gold:  rules.InitialGold,
			IsBot: id != HumanID,
		}
		if p.IsBot {
			p.Name = botName(id)
		}
		w.Players[id] = p

		cell := grid.At(start)
		cell.Owner = id
		cell.Troops = rules.InitialTroops
	}
	return w, nil
}

// Rand returns the random source driving this world.
func (w *World) Rand() Rand {
	return w.rnd
}

// SetRand replaces the random source, e.g. after loading a snapshot.
func (w *World) SetRand(rnd Rand) {
	w.rnd = rnd
}

// Player returns the player with the given id.
func (w *World) Player(id int) (*Player, bool) {
	if id < 0 || id >= len(w.Players) {
		return nil, false
	}
	return &w.Players[id], true
}

func (w *World) PlayerName(id int) string {
	if p, ok := w.Player(id); ok {
		return p.Name
	}
	return "neutral lands"
}

// Owner returns the owner of c, or NoOwner for unclaimed or invalid cells.
func (w *World) Owner(c Coord) int {
	if cell := w.Grid.At(c); cell != nil {
		return cell.Owner
	}
	return NoOwner
}

// Troops returns the garrison at c (zero when unclaimed).
func (w *World) Troops(c Coord) int {
	if cell := w.Grid.At(c); cell != nil && cell.Claimed() {
		return cell.Troops
	}
	return 0
}

// OwnedCells lists the cells of a player in row-major order.
func (w *World) OwnedCells(id int) []Coord {
	var cells []Coord
	for i, cell := range w.Grid.Cells {
		if cell.Owner == id {
			cells = append(cells, w.Grid.Coord(i))
		}
	}
	return cells
}

// HasCity reports whether a city of the given owner stands on c.
func (w *World) HasCity(c Coord, owner int) bool {
	city, ok := w.Cities[c]
	return ok && city.Owner == owner
}

// ApplyIncome credits a player's per-turn gold income and troop production and
// returns both totals.
func (w *World) ApplyIncome(id int) (gold, troops int) {
	p, ok := w.Player(id)
	if !ok {
		return 0, 0
	}
	cells := 0
	for i := range w.Grid.Cells {
		cell := &w.Grid.Cells[i]
		if cell.Owner != id {
			continue
		}
		cells++
		produced := w.Rules.ProductionPerCell
		if w.HasCity(w.Grid.Coord(i), id) {
			produced += w.Rules.CityBonus
		}
		cell.Troops += produced
		troops += produced
	}
	gold = w.Rules.IncomePerCell * cells
	p.Gold += gold
	return gold, troops
}

func (w *World) record(kind EventKind, format string, args ...any) {
	w.History = append(w.History, Event{
		Turn: w.Turn,
		Kind: kind,
		Text: fmt.Sprintf(format, args...),
	})
	w.TrimHistory()
}

// TrimHistory drops the oldest events beyond the configured cap.
func (w *World) TrimHistory() {
	if over := len(w.History) - w.Rules.HistoryCap; over > 0 {
		w.History = append(w.History[:0:0], w.History[over:]...)
	}
}

// Copy returns a deep copy sharing only the random source.
func (w *World) Copy() *World {
	cities := make(map[Coord]City, len(w.Cities))
	for c, city := range w.Cities {
		cities[c] = city
	}
	players := make([]Player, len(w.Players))
	copy(players, w.Players)
	history := make([]Event, len(w.History))
	copy(history, w.History)

	return &World{
		Grid:    w.Grid.Copy(),
		Players: players,
		Cities:  cities,
		Turn:    w.Turn,
		History: history,
		Rules:   w.Rules,
		rnd:     w.rnd,
	}
}

// Hash digests ownership, garrisons, cities, gold and the turn counter.
func (w *World) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(w.Turn))

	for _, cell := range w.Grid.Cells {
		binary.Write(hasher, binary.LittleEndian, int64(cell.Owner))
		binary.Write(hasher, binary.LittleEndian, int64(cell.Troops))
	}

	for _, p := range w.Players {
		binary.Write(hasher, binary.LittleEndian, int64(p.Gold))
	}

	// Map iteration order is random
	coords := make([]Coord, 0, len(w.Cities))
	for c := range w.Cities {
		coords = append(coords, c)
	}
	sortCoords(coords)
	for _, c := range coords {
		binary.Write(hasher, binary.LittleEndian, int64(c.X))
		binary.Write(hasher, binary.LittleEndian, int64(c.Y))
		binary.Write(hasher, binary.LittleEndian, int64(w.Cities[c].Owner))
	}

	return StateHash(hasher.Sum64())
}

// sortCoords orders coordinates row-major.
func sortCoords(coords []Coord) {
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})
}
