package game

import "sort"

// Standing summarises one player's position.
type Standing struct {
	Player         int
	Name           string
	Cells          int
	Troops         int
	Cities         int
	Gold           int
	TerritoryShare float64 // share of all claimed cells, between 0 and 1
}

// Standings tallies every player, ordered by territory then troops then id.
func Standings(w *World) []Standing {
	standings := make([]Standing, len(w.Players))
	for i, p := range w.Players {
		standings[i] = Standing{Player: p.ID, Name: p.Name, Gold: p.Gold}
	}

	claimed := 0
	for _, cell := range w.Grid.Cells {
		if !cell.Claimed() || cell.Owner >= len(standings) {
			continue
		}
		claimed++
		standings[cell.Owner].Cells++
		standings[cell.Owner].Troops += cell.Troops
	}
	for _, city := range w.Cities {
		if city.Owner >= 0 && city.Owner < len(standings) {
			standings[city.Owner].Cities++
		}
	}
	if claimed > 0 {
		for i := range standings {
			standings[i].TerritoryShare = float64(standings[i].Cells) / float64(claimed)
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Cells != b.Cells {
			return a.Cells > b.Cells
		}
		if a.Troops != b.Troops {
			return a.Troops > b.Troops
		}
		return a.Player < b.Player
	})
	return standings
}

// Winner returns the only player still holding territory, or NoOwner while
// several players (or none) remain.
func Winner(w *World) int {
	winner := NoOwner
	for _, cell := range w.Grid.Cells {
		if !cell.Claimed() {
			continue
		}
		if winner == NoOwner {
			winner = cell.Owner
		} else if cell.Owner != winner {
			return NoOwner
		}
	}
	return winner
}

// Eliminated reports whether a player holds no cells.
func Eliminated(w *World, player int) bool {
	for _, cell := range w.Grid.Cells {
		if cell.Owner == player {
			return false
		}
	}
	return true
}

// Advantage scores a player's territory and troops against all opponents
// combined, between -1 and 1.
func Advantage(w *World, player int) float64 {
	var cells, troops, otherCells, otherTroops float64
	for _, cell := range w.Grid.Cells {
		switch {
		case cell.Owner == player:
			cells++
			troops += float64(cell.Troops)
		case cell.Claimed():
			otherCells++
			otherTroops += float64(cell.Troops)
		}
	}
	return (normalize(cells, otherCells) + normalize(troops, otherTroops)) / 2
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
