package app

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"cluedo/internal/deduce"
	"cluedo/internal/domain"
)

var (
	ErrUnknownGuess = errors.New("guess not open")
	ErrUnownedCard  = errors.New("card does not name a witness")
)

// Casebook owns one deduction grid per open guess and keeps them consistent
// with each other: whatever one grid learns about a witness and a card is
// applied to every other grid naming that card.
//
// Casebook is safe for concurrent use; calls are serialised.
type Casebook struct {
	mu      sync.Mutex
	players int
	log     logrus.FieldLogger
	order   []string
	grids   map[string]*deduce.Grid
}

// NewCasebook creates an empty casebook for a game with the given number of
// players. A nil logger discards output.
func NewCasebook(players int, log logrus.FieldLogger) (*Casebook, error) {
	if players < 2 {
		return nil, fmt.Errorf("%w: got %d", deduce.ErrInvalidPlayerCount, players)
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Casebook{
		players: players,
		log:     log,
		grids:   make(map[string]*deduce.Grid),
	}, nil
}

// Open starts tracking guess and returns its key. Opening a guess twice
// returns the existing key.
func (c *Casebook) Open(guess domain.Guess) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := guess.String()
	if _, ok := c.grids[key]; ok {
		return key, nil
	}
	g, err := deduce.New(guess, c.players)
	if err != nil {
		return "", err
	}
	c.grids[key] = g
	c.order = append(c.order, key)
	c.log.WithField("guess", key).Debug("opened guess")
	return key, nil
}

// Accept records that witness can disprove the guess, with whatever is known
// about each slot.
func (c *Casebook) Accept(key string, witness int, values [domain.SlotCount]deduce.Cell) ([]Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	g, err := c.grid(key)
	if err != nil {
		return nil, err
	}
	f, err := g.AddWitness(witness, values)
	if err != nil {
		return nil, fmt.Errorf("guess %q: %w", key, err)
	}
	c.log.WithFields(logrus.Fields{"guess": key, "witness": witness}).Debug("witness accepted")
	return c.settle(c.flagged(key, f, nil))
}

// Reject records that witness cannot disprove the guess.
func (c *Casebook) Reject(key string, witness int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	g, err := c.grid(key)
	if err != nil {
		return err
	}
	g.RejectWitness(witness)
	c.log.WithFields(logrus.Fields{"guess": key, "witness": witness}).Debug("witness rejected")
	return nil
}

// RecordHeld applies "card.Owner holds card" to every guess naming the card.
func (c *Casebook) RecordHeld(card domain.Card) ([]Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	events, err := c.spread(card, (*deduce.Grid).MarkHeld, nil)
	if err != nil {
		return nil, err
	}
	return c.settle(events)
}

// RecordLacking applies "card.Owner lacks card" to every guess naming the card.
func (c *Casebook) RecordLacking(card domain.Card) ([]Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	events, err := c.spread(card, (*deduce.Grid).MarkLacking, nil)
	if err != nil {
		return nil, err
	}
	return c.settle(events)
}

// Render returns the text dump of one grid.
func (c *Casebook) Render(key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	g, err := c.grid(key)
	if err != nil {
		return "", err
	}
	return g.String(), nil
}

// Solved reports whether every owner of the guess is known.
func (c *Casebook) Solved(key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	g, err := c.grid(key)
	if err != nil {
		return false, err
	}
	return g.Solved(), nil
}

// Keys returns the open guesses in the order they were opened.
func (c *Casebook) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.order...)
}

func (c *Casebook) grid(key string) (*deduce.Grid, error) {
	g, ok := c.grids[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGuess, key)
	}
	return g, nil
}

type markFunc func(*deduce.Grid, domain.Card) (deduce.Flags, error)

func (c *Casebook) spread(card domain.Card, mark markFunc, events []Event) ([]Event, error) {
	if !card.HasOwner() {
		return nil, fmt.Errorf("%w: %s", ErrUnownedCard, card)
	}
	for _, key := range c.order {
		g := c.grids[key]
		if !g.ContainsCard(card) {
			continue
		}
		f, err := mark(g, card)
		if err != nil {
			return nil, fmt.Errorf("guess %q: %w", key, err)
		}
		events = c.flagged(key, f, events)
	}
	return events, nil
}

func (c *Casebook) flagged(key string, f deduce.Flags, events []Event) []Event {
	if !f.UniqueRemaining {
		return events
	}
	for _, ev := range events {
		if ev.Kind == EventUniqueRemaining && ev.Guess == key {
			return events
		}
	}
	c.log.WithField("guess", key).Info("remaining cards lie with unlisted players")
	return append(events, Event{Kind: EventUniqueRemaining, Guess: key})
}

// settle drains every grid and feeds the deductions back in until no grid
// has anything pending.
func (c *Casebook) settle(events []Event) ([]Event, error) {
	for {
		var held, lacking []domain.Card
		for _, key := range c.order {
			g := c.grids[key]
			for _, card := range g.DrainSolved() {
				c.log.WithFields(logrus.Fields{"guess": key, "card": card.Name, "witness": card.Owner}).Info("deduced holding")
				events = append(events, Event{Kind: EventCardSolved, Guess: key, Card: card})
				held = append(held, card)
			}
			for _, card := range g.DrainStrikes() {
				c.log.WithFields(logrus.Fields{"guess": key, "card": card.Name, "witness": card.Owner}).Debug("deduced exclusion")
				events = append(events, Event{Kind: EventCardStruck, Guess: key, Card: card})
				lacking = append(lacking, card)
			}
		}
		if len(held) == 0 && len(lacking) == 0 {
			return events, nil
		}

		var err error
		for _, card := range held {
			if events, err = c.spread(card, (*deduce.Grid).MarkHeld, events); err != nil {
				return nil, err
			}
		}
		for _, card := range lacking {
			if events, err = c.spread(card, (*deduce.Grid).MarkLacking, events); err != nil {
				return nil, err
			}
		}
	}
}
