package domain

import "sort"

// Classic card names from the standard Clue box.
var (
	ClassicSuspects = []string{"Miss Scarlet", "Colonel Mustard", "Mrs. White", "Mr. Green", "Mrs. Peacock", "Professor Plum"}
	ClassicRooms    = []string{"Kitchen", "Ballroom", "Conservatory", "Dining Room", "Billiard Room", "Library", "Lounge", "Hall", "Study"}
	ClassicWeapons  = []string{"Candlestick", "Knife", "Lead Pipe", "Revolver", "Rope", "Wrench"}
)

// Deck is a catalogue of card names grouped by kind.
type Deck struct {
	byName map[string]Card
}

// NewDeck builds a deck from the given name lists. Duplicate names keep the
// first kind they were listed under.
func NewDeck(suspects, rooms, weapons []string) *Deck {
	d := &Deck{byName: make(map[string]Card, len(suspects)+len(rooms)+len(weapons))}
	d.add(suspects, KindSuspect)
	d.add(rooms, KindRoom)
	d.add(weapons, KindWeapon)
	return d
}

// ClassicDeck returns the standard 21-card deck.
func ClassicDeck() *Deck {
	return NewDeck(ClassicSuspects, ClassicRooms, ClassicWeapons)
}

func (d *Deck) add(names []string, kind Kind) {
	for _, n := range names {
		if _, ok := d.byName[n]; ok {
			continue
		}
		d.byName[n] = NewCard(n, kind)
	}
}

// Lookup returns the unowned card with the given name.
func (d *Deck) Lookup(name string) (Card, bool) {
	c, ok := d.byName[name]
	return c, ok
}

// Len returns the number of distinct cards.
func (d *Deck) Len() int {
	return len(d.byName)
}

// Cards returns every card of the given kind sorted by name.
func (d *Deck) Cards(kind Kind) []Card {
	var out []Card
	for _, c := range d.byName {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
