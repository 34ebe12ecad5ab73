package game

import (
	"errors"
	"fmt"

	"github.com/Alex12062012/Call-of-War-2.0/utils"
)

const SnapshotVersion = 1

var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// Snapshot is the serializable form of a World. Terrain is stored as a layout
// string, ownership only for claimed cells.
type Snapshot struct {
	Version int              `json:"version"`
	Size    int              `json:"size"`
	Terrain string           `json:"terrain"`
	Cells   []CellSnapshot   `json:"cells"`
	Players []PlayerSnapshot `json:"players"`
	Cities  []CitySnapshot   `json:"cities"`
	Turn    int              `json:"turn"`
	History []EventSnapshot  `json:"history"`
	Rules   Rules            `json:"rules"`
}

type CellSnapshot struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Owner  int `json:"owner"`
	Troops int `json:"troops"`
}

type PlayerSnapshot struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Gold  int    `json:"gold"`
	IsBot bool   `json:"is_bot"`
}

type CitySnapshot struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Owner int `json:"owner"`
}

type EventSnapshot struct {
	Turn int    `json:"turn"`
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// Serialize captures the complete state of w. The random source is not part
// of the snapshot.
func Serialize(w *World) Snapshot {
	s := Snapshot{
		Version: SnapshotVersion,
		Size:    w.Grid.Size,
		Terrain: w.Grid.Layout(),
		Cells:   []CellSnapshot{},
		Players: make([]PlayerSnapshot, len(w.Players)),
		Cities:  make([]CitySnapshot, 0, len(w.Cities)),
		Turn:    w.Turn,
		History: make([]EventSnapshot, len(w.History)),
		Rules:   w.Rules,
	}
	for i, cell := range w.Grid.Cells {
		if !cell.Claimed() {
			continue
		}
		c := w.Grid.Coord(i)
		s.Cells = append(s.Cells, CellSnapshot{X: c.X, Y: c.Y, Owner: cell.Owner, Troops: cell.Troops})
	}
	for i, p := range w.Players {
		s.Players[i] = PlayerSnapshot{ID: p.ID, Name: p.Name, Color: p.Color, Gold: p.Gold, IsBot: p.IsBot}
	}

	coords := make([]Coord, 0, len(w.Cities))
	for c := range w.Cities {
		coords = append(coords, c)
	}
	sortCoords(coords)
	for _, c := range coords {
		s.Cities = append(s.Cities, CitySnapshot{X: c.X, Y: c.Y, Owner: w.Cities[c].Owner})
	}

	for i, e := range w.History {
		s.History[i] = EventSnapshot{Turn: e.Turn, Kind: e.Kind.String(), Text: e.Text}
	}
	return s
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrCorruptSnapshot)
}

// Deserialize rebuilds a World from s, attaching rnd as its random source, or a
// clock-seeded one when rnd is nil. Any inconsistency is reported as
// ErrCorruptSnapshot and no world is returned.
func Deserialize(s Snapshot, rnd Rand) (*World, error) {
	if s.Version != SnapshotVersion {
		return nil, corrupt("unsupported version %d", s.Version)
	}
	if err := s.Rules.Validate(); err != nil {
		return nil, corrupt("rules: %v", err)
	}
	if s.Size < 1 {
		return nil, corrupt("grid size %d", s.Size)
	}
	if s.Size != s.Rules.GridSide {
		return nil, corrupt("grid size %d does not match rules grid side %d", s.Size, s.Rules.GridSide)
	}
	if len(s.Terrain) != s.Size*s.Size {
		return nil, corrupt("terrain has %d cells, want %d", len(s.Terrain), s.Size*s.Size)
	}
	if s.Turn < 0 {
		return nil, corrupt("negative turn %d", s.Turn)
	}

	grid := NewGrid(s.Size)
	for i := 0; i < len(s.Terrain); i++ {
		switch s.Terrain[i] {
		case landGlyph:
			grid.Cells[i].Terrain = Land
		case seaGlyph:
		default:
			return nil, corrupt("unexpected terrain glyph %q at %v", s.Terrain[i], grid.Coord(i))
		}
	}

	if len(s.Players) == 0 {
		return nil, corrupt("no players")
	}
	players := make([]Player, len(s.Players))
	for i, p := range s.Players {
		if p.ID != i {
			return nil, corrupt("player at index %d has id %d", i, p.ID)
		}
		if p.Gold < 0 {
			return nil, corrupt("player %d has negative gold", p.ID)
		}
		if p.IsBot != (p.ID != HumanID) {
			return nil, corrupt("player %d has the wrong controller", p.ID)
		}
		players[i] = Player{ID: p.ID, Name: p.Name, Color: p.Color, Gold: p.Gold, IsBot: p.IsBot}
	}

	for _, cs := range s.Cells {
		c := Coord{X: cs.X, Y: cs.Y}
		cell := grid.At(c)
		switch {
		case cell == nil:
			return nil, corrupt("cell %v is off the grid", c)
		case cell.Terrain != Land:
			return nil, corrupt("claimed cell %v is sea", c)
		case cell.Claimed():
			return nil, corrupt("cell %v listed twice", c)
		case cs.Owner < 0 || cs.Owner >= len(players):
			return nil, corrupt("cell %v has unknown owner %d", c, cs.Owner)
		case cs.Troops < 0:
			return nil, corrupt("cell %v has negative troops", c)
		}
		cell.Owner = cs.Owner
		cell.Troops = cs.Troops
	}

	cities := make(map[Coord]City, len(s.Cities))
	for _, cs := range s.Cities {
		c := Coord{X: cs.X, Y: cs.Y}
		if _, dup := cities[c]; dup {
			return nil, corrupt("city %v listed twice", c)
		}
		cell := grid.At(c)
		if cell == nil || !cell.Claimed() || cell.Owner != cs.Owner {
			return nil, corrupt("city %v does not stand on a cell of player %d", c, cs.Owner)
		}
		cities[c] = City{Owner: cs.Owner}
	}

	if len(s.History) > s.Rules.HistoryCap {
		return nil, corrupt("history holds %d events, cap is %d", len(s.History), s.Rules.HistoryCap)
	}
	history := make([]Event, len(s.History))
	for i, e := range s.History {
		kind, err := parseEventKind(e.Kind)
		if err != nil {
			return nil, corrupt("history entry %d: %v", i, err)
		}
		history[i] = Event{Turn: e.Turn, Kind: kind, Text: e.Text}
	}

	if rnd == nil {
		rnd = NewRand(0)
	}

	return &World{
		Grid:    grid,
		Players: players,
		Cities:  cities,
		Turn:    s.Turn,
		History: history,
		Rules:   s.Rules,
		rnd:     rnd,
	}, nil
}

func parseEventKind(s string) (EventKind, error) {
	i := utils.FindIndex(eventKindNames, s)
	if i < 0 {
		return 0, fmt.Errorf("unknown event kind %q", s)
	}
	return EventKind(i), nil
}
