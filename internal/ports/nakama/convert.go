package nakama

import (
	"fmt"

	"cluedo/internal/app"
	"cluedo/internal/deduce"
	"cluedo/internal/domain"
)

type eventResponse struct {
	Kind     string `json:"kind"`
	Guess    string `json:"guess"`
	Card     string `json:"card,omitempty"`
	CardKind string `json:"card_kind,omitempty"`
	Witness  *int   `json:"witness,omitempty"`
}

func toEventResponses(evs []app.Event) []eventResponse {
	out := make([]eventResponse, 0, len(evs))
	for _, ev := range evs {
		r := eventResponse{Kind: string(ev.Kind), Guess: ev.Guess}
		if ev.Card.Name != "" {
			owner := ev.Card.Owner
			r.Card = ev.Card.Name
			r.CardKind = string(ev.Card.Kind)
			r.Witness = &owner
		}
		out = append(out, r)
	}
	return out
}

// toCells converts a response's slot values. An empty list means nothing is
// known about any slot.
func toCells(values []int) ([domain.SlotCount]deduce.Cell, error) {
	var cells [domain.SlotCount]deduce.Cell
	switch len(values) {
	case 0:
		return cells, nil
	case domain.SlotCount:
	default:
		return cells, fmt.Errorf("values must list %d slots, got %d", domain.SlotCount, len(values))
	}
	for i, v := range values {
		if v < int(deduce.LacksUnresolved) || v > int(deduce.Has) {
			return cells, fmt.Errorf("slot %d: %w %d", i, deduce.ErrInvalidCellValue, v)
		}
		cells[i] = deduce.Cell(v)
	}
	return cells, nil
}

func lookupCard(deck *domain.Deck, name string) (domain.Card, error) {
	c, ok := deck.Lookup(name)
	if !ok {
		return domain.Card{}, fmt.Errorf("unknown card %q", name)
	}
	return c, nil
}
