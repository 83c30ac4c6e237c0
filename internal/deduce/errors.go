package deduce

import (
	"errors"
	"fmt"

	"cluedo/internal/domain"
)

var (
	ErrInvalidCellValue   = errors.New("invalid cell value")
	ErrInvalidSlotKind    = errors.New("card kind does not map to a guess slot")
	ErrForeignCard        = errors.New("card is not part of the guess")
	ErrContradiction      = errors.New("contradictory evidence")
	ErrImpossibleState    = errors.New("impossible grid state")
	ErrInvalidPlayerCount = errors.New("player count must be at least 2")
)

// CellValueError reports an input value outside {-2, -1, 0, 1}.
type CellValueError struct {
	Witness int
	Slot    int
	Value   Cell
}

func (e *CellValueError) Error() string {
	return fmt.Sprintf("%s: witness %d slot %d value %d", ErrInvalidCellValue, e.Witness, e.Slot, e.Value)
}

func (e *CellValueError) Unwrap() error { return ErrInvalidCellValue }

// SlotKindError reports a card whose kind is not suspect, room or weapon.
type SlotKindError struct {
	Card domain.Card
}

func (e *SlotKindError) Error() string {
	return fmt.Sprintf("%s: card %q has kind %q", ErrInvalidSlotKind, e.Card.Name, e.Card.Kind)
}

func (e *SlotKindError) Unwrap() error { return ErrInvalidSlotKind }

// Reason classifies a contradiction.
type Reason string

const (
	ReasonHasOverLacks     Reason = "witness already known to lack the card"
	ReasonLacksOverHas     Reason = "witness already known to hold the card"
	ReasonSharedOwner      Reason = "two witnesses hold the same card"
	ReasonConflictingOwner Reason = "deduced owner conflicts with a pending deduction"
	ReasonTooManyWitnesses Reason = "more than three witnesses hold cards of one guess"
	ReasonSeveralCards     Reason = "witness holds more than one card while three witnesses are accepted"
)

// ContradictionError reports evidence that cannot be reconciled with what the
// grid already knows. Card is the zero value when the contradiction is not
// about a single card.
type ContradictionError struct {
	Reason  Reason
	Witness int
	Card    domain.Card
	Guess   domain.Guess
}

func (e *ContradictionError) Error() string {
	if e.Card.Name == "" {
		return fmt.Sprintf("%s: %s (witness %d, %s)", ErrContradiction, e.Reason, e.Witness, e.Guess)
	}
	return fmt.Sprintf("%s: %s (witness %d, card %s, %s)", ErrContradiction, e.Reason, e.Witness, e.Card, e.Guess)
}

func (e *ContradictionError) Unwrap() error { return ErrContradiction }

// ImpossibleStateError reports a row or column made entirely of Lacks. For a
// row Witness is set and Card is empty; for a column Witness is
// domain.NoOwner and Card names the card nobody can hold.
type ImpossibleStateError struct {
	Witness int
	Card    domain.Card
	Guess   domain.Guess
}

// Row reports whether the failing line is a witness row.
func (e *ImpossibleStateError) Row() bool {
	return e.Card.Name == ""
}

func (e *ImpossibleStateError) Error() string {
	if e.Row() {
		return fmt.Sprintf("%s: witness %d cannot hold any card of %s", ErrImpossibleState, e.Witness, e.Guess)
	}
	return fmt.Sprintf("%s: no witness can hold %s in %s", ErrImpossibleState, e.Card, e.Guess)
}

func (e *ImpossibleStateError) Unwrap() error { return ErrImpossibleState }
