package app

import "cluedo/internal/domain"

// EventKind identifies a deduction surfaced by the casebook.
type EventKind string

const (
	EventCardSolved      EventKind = "card_solved"
	EventCardStruck      EventKind = "card_struck"
	EventUniqueRemaining EventKind = "unique_remaining"
)

// Event is a single deduction. Card is empty for EventUniqueRemaining.
type Event struct {
	Kind  EventKind
	Guess string
	Card  domain.Card
}
