package game

// LandConnected reports whether a and b are both land and joined by a path of
// orthogonally adjacent land cells. Just BFS.
func (w *World) LandConnected(a, b Coord) bool {
	g := w.Grid
	if !g.IsLand(a) || !g.IsLand(b) {
		return false
	}
	if a == b {
		return true
	}

	visited := make(map[Coord]bool)
	visited[a] = true
	queue := []Coord{a}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range current.Neighbors() {
			if visited[next] || !g.IsLand(next) {
				continue
			}
			if next == b {
				return true
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return false
}

// NeedsBoat reports whether reaching to from from requires naval transport:
// both are land, they are not direct neighbours, and no land route joins them.
// Recomputed on every call since ownership and garrisons change every turn.
func (w *World) NeedsBoat(from, to Coord) bool {
	if !w.Grid.IsLand(from) || !w.Grid.IsLand(to) {
		return false
	}
	if from.Adjacent(to) {
		return false
	}
	return !w.LandConnected(from, to)
}
