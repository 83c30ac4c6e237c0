// Package deduce infers card ownership for a single Clue guess from witness
// responses.
//
// A Grid holds one row per witness known to hold at least one of the guessed
// cards and one column per slot (suspect, room, weapon). Each mutation records
// a fact and then propagates until nothing else can be inferred. Newly
// inferred holdings and exclusions queue up until the caller drains them.
//
// A Grid is not safe for concurrent use.
package deduce

import (
	"fmt"
	"slices"

	"cluedo/internal/domain"
)

const size = domain.SlotCount

// state is everything a failed mutation must roll back.
type state struct {
	witnesses [size]int
	rows      int
	cells     [size][size]Cell
	solvedNum int
	struckNum int
	solved    []domain.Card
	strikes   []domain.Card
}

func (s state) clone() state {
	s.solved = slices.Clone(s.solved)
	s.strikes = slices.Clone(s.strikes)
	return s
}

// Grid is the inference engine for one guess.
type Grid struct {
	guess    domain.Guess
	players  int
	rejected map[int]struct{}
	state
}

// New creates an empty grid for guess in a game of the given number of players.
func New(guess domain.Guess, players int) (*Grid, error) {
	if !guess.Valid() {
		return nil, domain.ErrInvalidGuessShape
	}
	if players < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlayerCount, players)
	}
	return &Grid{
		guess:    guess,
		players:  players,
		rejected: make(map[int]struct{}),
	}, nil
}

// AddWitness records a witness who holds at least one of the guessed cards,
// together with what is already known about each slot. Re-adding a known
// witness changes nothing.
func (g *Grid) AddWitness(id int, values [size]Cell) (Flags, error) {
	for slot, v := range values {
		if !v.valid() {
			return Flags{}, &CellValueError{Witness: id, Slot: slot, Value: v}
		}
	}
	if g.IsAccepted(id) {
		return Flags{}, nil
	}
	if g.rows == size {
		return Flags{}, &ContradictionError{Reason: ReasonTooManyWitnesses, Witness: id, Guess: g.guess}
	}

	return g.apply(func() error {
		row := g.rows
		g.witnesses[row] = id
		g.rows++
		for slot, v := range values {
			v = v.normalize()
			g.cells[row][slot] = v
			if v == Has {
				g.solvedNum++
			}
		}
		// Any card already placed, by this row or an earlier one, is
		// excluded from every other row.
		for slot := 0; slot < size; slot++ {
			if g.column(slot).has == 0 {
				continue
			}
			if err := g.enforceColumn(slot); err != nil {
				return err
			}
		}
		return nil
	})
}

// RejectWitness records a witness who holds none of the guessed cards.
func (g *Grid) RejectWitness(id int) {
	g.rejected[id] = struct{}{}
}

// MarkHeld records that card.Owner holds card. Every other accepted witness
// is marked as lacking it.
func (g *Grid) MarkHeld(card domain.Card) (Flags, error) {
	slot, err := g.slotOf(card)
	if err != nil {
		return Flags{}, err
	}
	return g.apply(func() error {
		for row := 0; row < g.rows; row++ {
			if g.witnesses[row] == card.Owner {
				continue
			}
			if err := g.setLacks(row, slot, true); err != nil {
				return err
			}
		}
		if row, ok := g.rowOf(card.Owner); ok {
			return g.setHas(row, slot, false)
		}
		return nil
	})
}

// MarkLacking records that card.Owner does not hold card. It has no direct
// effect when the owner is not an accepted witness.
func (g *Grid) MarkLacking(card domain.Card) (Flags, error) {
	slot, err := g.slotOf(card)
	if err != nil {
		return Flags{}, err
	}
	return g.apply(func() error {
		if row, ok := g.rowOf(card.Owner); ok {
			return g.setLacks(row, slot, false)
		}
		return nil
	})
}

// apply runs a mutation followed by propagation. On error the grid is left
// exactly as it was before the call.
func (g *Grid) apply(mutate func() error) (Flags, error) {
	before := g.state.clone()
	err := mutate()
	if err == nil {
		err = g.propagate()
	}
	if err != nil {
		g.state = before
		return Flags{}, err
	}
	return Flags{
		SolvedChanged:   g.solvedNum != before.solvedNum,
		StruckChanged:   g.struckNum != before.struckNum,
		UniqueRemaining: g.Reported() == g.players && g.rows < size,
	}, nil
}

func (g *Grid) slotOf(card domain.Card) (int, error) {
	slot, ok := card.Kind.Slot()
	if !ok {
		return 0, &SlotKindError{Card: card}
	}
	if !g.guess.Contains(card) {
		return 0, fmt.Errorf("%w: %s not in %s", ErrForeignCard, card, g.guess)
	}
	return slot, nil
}

func (g *Grid) rowOf(witness int) (int, bool) {
	for row := 0; row < g.rows; row++ {
		if g.witnesses[row] == witness {
			return row, true
		}
	}
	return 0, false
}

func (g *Grid) cardAt(row, slot int) domain.Card {
	c, _ := g.guess.Card(slot)
	return c.WithOwner(g.witnesses[row])
}

// setHas marks the cell and excludes every other row from the column. When
// deduced is set the card is queued for the caller.
func (g *Grid) setHas(row, slot int, deduced bool) error {
	switch g.cells[row][slot] {
	case Has:
		return nil
	case Lacks:
		return &ContradictionError{Reason: ReasonHasOverLacks, Witness: g.witnesses[row], Card: g.cardAt(row, slot), Guess: g.guess}
	}
	if deduced {
		if err := g.queueSolved(g.cardAt(row, slot)); err != nil {
			return err
		}
	}
	g.cells[row][slot] = Has
	g.solvedNum++
	return g.enforceColumn(slot)
}

// setLacks marks the cell. When deduced is set the exclusion is queued for
// the caller.
func (g *Grid) setLacks(row, slot int, deduced bool) error {
	switch g.cells[row][slot] {
	case Lacks:
		return nil
	case Has:
		return &ContradictionError{Reason: ReasonLacksOverHas, Witness: g.witnesses[row], Card: g.cardAt(row, slot), Guess: g.guess}
	}
	g.cells[row][slot] = Lacks
	g.struckNum++
	if deduced {
		g.queueStrike(g.cardAt(row, slot))
	}
	return nil
}

// enforceColumn keeps a placed card with exactly one owner.
func (g *Grid) enforceColumn(slot int) error {
	owners := 0
	owner := 0
	for row := 0; row < g.rows; row++ {
		if g.cells[row][slot] == Has {
			owners++
			owner = row
		}
	}
	if owners > 1 {
		card, _ := g.guess.Card(slot)
		return &ContradictionError{Reason: ReasonSharedOwner, Witness: g.witnesses[owner], Card: card, Guess: g.guess}
	}
	for row := 0; row < g.rows; row++ {
		if g.cells[row][slot] == Unknown {
			if err := g.setLacks(row, slot, true); err != nil {
				return err
			}
		}
	}
	return nil
}

// queueSolved adds a deduced holding unless it is already pending.
func (g *Grid) queueSolved(card domain.Card) error {
	for _, c := range g.solved {
		if domain.SameHolding(c, card) {
			return nil
		}
		if domain.SameCard(c, card) {
			return &ContradictionError{Reason: ReasonConflictingOwner, Witness: card.Owner, Card: card, Guess: g.guess}
		}
	}
	g.solved = append(g.solved, card)
	return nil
}

// queueStrike adds a deduced exclusion unless the card is already pending.
func (g *Grid) queueStrike(card domain.Card) {
	for _, c := range g.strikes {
		if domain.SameCard(c, card) {
			return
		}
	}
	g.strikes = append(g.strikes, card)
}

// Solved reports whether all three owners are known and delivered.
func (g *Grid) Solved() bool {
	return g.solvedNum == size && len(g.solved) == 0
}

// DrainSolved returns and clears the pending deduced holdings.
func (g *Grid) DrainSolved() []domain.Card {
	out := g.solved
	g.solved = nil
	return out
}

// DrainStrikes returns and clears the pending deduced exclusions.
func (g *Grid) DrainStrikes() []domain.Card {
	out := g.strikes
	g.strikes = nil
	return out
}

func (g *Grid) AcceptedCount() int { return g.rows }
func (g *Grid) SolvedCount() int   { return g.solvedNum }
func (g *Grid) StruckCount() int   { return g.struckNum }
func (g *Grid) Players() int       { return g.players }

// Guess returns the guess the grid is keyed to.
func (g *Grid) Guess() domain.Guess {
	return g.guess
}

// Reported returns how many witnesses have answered the guess either way.
func (g *Grid) Reported() int {
	return g.rows + len(g.rejected)
}

// Witnesses returns the accepted witnesses in row order.
func (g *Grid) Witnesses() []int {
	return slices.Clone(g.witnesses[:g.rows])
}

// Cell returns the value at row, slot. Out of range positions read Unknown.
func (g *Grid) Cell(row, slot int) Cell {
	if row < 0 || row >= g.rows || slot < 0 || slot >= size {
		return Unknown
	}
	return g.cells[row][slot]
}

func (g *Grid) IsAccepted(id int) bool {
	_, ok := g.rowOf(id)
	return ok
}

func (g *Grid) IsRejected(id int) bool {
	_, ok := g.rejected[id]
	return ok
}

// ContainsCard reports whether card is one of the guessed cards.
func (g *Grid) ContainsCard(card domain.Card) bool {
	return g.guess.Contains(card)
}
