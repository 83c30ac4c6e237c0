package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidGuessShape is returned when a guess is not one suspect, one room and one weapon.
var ErrInvalidGuessShape = errors.New("guess must name a suspect, a room and a weapon")

// GuessShapeError reports the kinds a rejected guess was built from.
type GuessShapeError struct {
	Kinds [SlotCount]Kind
}

func (e *GuessShapeError) Error() string {
	return fmt.Sprintf("%s: got %s, %s, %s", ErrInvalidGuessShape, e.Kinds[0], e.Kinds[1], e.Kinds[2])
}

func (e *GuessShapeError) Unwrap() error {
	return ErrInvalidGuessShape
}

// Guess is an immutable suspect/room/weapon triple. The zero value is not a
// valid guess; use NewGuess.
type Guess struct {
	cards [SlotCount]Card
}

// NewGuess validates the kinds and captures copies of the three cards.
func NewGuess(suspect, room, weapon Card) (Guess, error) {
	if suspect.Kind != KindSuspect || room.Kind != KindRoom || weapon.Kind != KindWeapon {
		return Guess{}, &GuessShapeError{Kinds: [SlotCount]Kind{suspect.Kind, room.Kind, weapon.Kind}}
	}
	return Guess{cards: [SlotCount]Card{suspect, room, weapon}}, nil
}

// Valid reports whether g was built by NewGuess.
func (g Guess) Valid() bool {
	return g.cards[0].Kind == KindSuspect && g.cards[1].Kind == KindRoom && g.cards[2].Kind == KindWeapon
}

// Cards returns the suspect, room and weapon in that order.
func (g Guess) Cards() [SlotCount]Card {
	return g.cards
}

// Card returns the card in the given slot.
func (g Guess) Card(slot int) (Card, bool) {
	if slot < 0 || slot >= SlotCount {
		return Card{}, false
	}
	return g.cards[slot], true
}

func (g Guess) Suspect() Card { return g.cards[0] }
func (g Guess) Room() Card    { return g.cards[1] }
func (g Guess) Weapon() Card  { return g.cards[2] }

// Contains reports whether target is one of the guessed cards, ignoring owners.
func (g Guess) Contains(target Card) bool {
	for _, c := range g.cards {
		if SameCard(c, target) {
			return true
		}
	}
	return false
}

// Equal compares all three slots.
func (g Guess) Equal(other Guess) bool {
	for i := range g.cards {
		if !SameCard(g.cards[i], other.cards[i]) {
			return false
		}
	}
	return true
}

// SameSuspect reports whether both guesses accuse the same suspect.
func (g Guess) SameSuspect(other Guess) bool {
	return SameCard(g.Suspect(), other.Suspect())
}

func (g Guess) String() string {
	return fmt.Sprintf("Guess: %s with the %s in the %s", g.Suspect(), g.Weapon(), g.Room())
}
