package domain

// Kind is the category a Clue card belongs to.
type Kind string

const (
	KindSuspect Kind = "suspect"
	KindRoom    Kind = "room"
	KindWeapon  Kind = "weapon"
)

// SlotCount is the number of cards named by a guess.
const SlotCount = 3

// NoOwner marks a card whose holder is not known.
const NoOwner = -1

// Slot returns the guess column for the kind: 0 suspect, 1 room, 2 weapon.
func (k Kind) Slot() (int, bool) {
	switch k {
	case KindSuspect:
		return 0, true
	case KindRoom:
		return 1, true
	case KindWeapon:
		return 2, true
	}
	return 0, false
}

// KindForSlot is the inverse of Kind.Slot.
func KindForSlot(slot int) (Kind, bool) {
	switch slot {
	case 0:
		return KindSuspect, true
	case 1:
		return KindRoom, true
	case 2:
		return KindWeapon, true
	}
	return "", false
}

// Card is a single Clue card, optionally stamped with the witness that holds
// it. Card is a plain value; copies never share state.
type Card struct {
	Name  string
	Kind  Kind
	Owner int
}

// NewCard returns an unowned card.
func NewCard(name string, kind Kind) Card {
	return Card{Name: name, Kind: kind, Owner: NoOwner}
}

// WithOwner returns a copy of c held by the given witness.
func (c Card) WithOwner(witness int) Card {
	c.Owner = witness
	return c
}

// HasOwner reports whether the card names a holder.
func (c Card) HasOwner() bool {
	return c.Owner != NoOwner
}

// SameCard compares identity only; the owner is ignored.
func SameCard(a, b Card) bool {
	return a.Name == b.Name && a.Kind == b.Kind
}

// SameHolding compares identity and owner.
func SameHolding(a, b Card) bool {
	return SameCard(a, b) && a.Owner == b.Owner
}

func (c Card) String() string {
	return c.Name
}
