package deduce

import (
	"fmt"
	"strings"
)

// String renders the grid as a table of witness rows with the running solved
// count.
func (g *Grid) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Guess matrix for: %s\n", g.guess)
	fmt.Fprintf(&b, "--- ID Number --- %11s --- %11s --- %11s ---\n", g.guess.Suspect(), g.guess.Room(), g.guess.Weapon())
	for row := 0; row < g.rows; row++ {
		c := g.cells[row]
		fmt.Fprintf(&b, "--- %9d --- %11d --- %11d --- %11d ---\n", g.witnesses[row], c[0], c[1], c[2])
	}
	fmt.Fprintf(&b, "SolvedNum = %d\n", g.solvedNum)
	return b.String()
}
