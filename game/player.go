package game

// Player is one participant. Players are never removed; a defeated player
// simply owns no cells.
type Player struct {
	ID    int
	Name  string
	Color string
	Gold  int
	IsBot bool
}

// City fortifies a claimed cell and adds production for its owner.
type City struct {
	Owner int
}

var botNames = []string{
	"Baron Noir", "Comte Sanglant", "Duc des Ombres", "Roi Maudit",
	"Empereur du Chaos", "Marquis Gris", "Prince Pâle", "Reine Cendre",
}

var palette = []string{
	"#3498db", "#e74c3c", "#9b59b6", "#f39c12",
	"#2ecc71", "#1abc9c", "#95a5a6", "#34495e",
}

func botName(id int) string {
	name := botNames[(id-1)%len(botNames)]
	if round := (id - 1) / len(botNames); round > 0 {
		return name + " " + roman(round+1)
	}
	return name
}

func playerColor(id int) string {
	return palette[id%len(palette)]
}

// roman is only needed for small numbers of repeated bot names.
func roman(n int) string {
	numerals := []struct {
		value  int
		symbol string
	}{{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"}}
	out := ""
	for _, numeral := range numerals {
		for n >= numeral.value {
			out += numeral.symbol
			n -= numeral.value
		}
	}
	return out
}
