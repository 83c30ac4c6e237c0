package deduce

import "cluedo/internal/domain"

// propagate applies deductions until none apply. With fewer than three
// witnesses only the row rule is sound: a witness who lacks two of the cards
// holds the third. With three witnesses the grid is square and every row and
// every column holds exactly one card, so both rules run in both directions.
func (g *Grid) propagate() error {
	square := g.rows == size
	for {
		changed := false
		for row := 0; row < g.rows; row++ {
			c, err := g.resolveRow(row, square)
			if err != nil {
				return err
			}
			changed = changed || c
		}
		if square {
			for slot := 0; slot < size; slot++ {
				c, err := g.resolveColumn(slot)
				if err != nil {
					return err
				}
				changed = changed || c
			}
		}
		if !changed {
			return nil
		}
	}
}

func (g *Grid) row(row int) tally {
	var t tally
	for slot := 0; slot < size; slot++ {
		t.add(g.cells[row][slot])
	}
	return t
}

func (g *Grid) column(slot int) tally {
	var t tally
	for row := 0; row < g.rows; row++ {
		t.add(g.cells[row][slot])
	}
	return t
}

func (g *Grid) resolveRow(row int, square bool) (bool, error) {
	t := g.row(row)
	if t.lacks == size {
		return false, &ImpossibleStateError{Witness: g.witnesses[row], Guess: g.guess}
	}
	if t.sum() == 1-size && t.unknown == 1 {
		for slot := 0; slot < size; slot++ {
			if g.cells[row][slot] == Unknown {
				return true, g.setHas(row, slot, true)
			}
		}
	}
	if !square {
		return false, nil
	}
	if t.has > 1 {
		return false, &ContradictionError{Reason: ReasonSeveralCards, Witness: g.witnesses[row], Guess: g.guess}
	}
	if t.has == 1 && t.unknown > 0 {
		for slot := 0; slot < size; slot++ {
			if g.cells[row][slot] == Unknown {
				if err := g.setLacks(row, slot, true); err != nil {
					return true, err
				}
			}
		}
		return true, nil
	}
	return false, nil
}

func (g *Grid) resolveColumn(slot int) (bool, error) {
	t := g.column(slot)
	card, _ := g.guess.Card(slot)
	if t.lacks == size {
		return false, &ImpossibleStateError{Witness: domain.NoOwner, Card: card, Guess: g.guess}
	}
	if t.sum() == 1-size && t.unknown == 1 {
		for row := 0; row < size; row++ {
			if g.cells[row][slot] == Unknown {
				return true, g.setHas(row, slot, true)
			}
		}
	}
	if t.has == 1 && t.unknown > 0 {
		return true, g.enforceColumn(slot)
	}
	return false, nil
}
