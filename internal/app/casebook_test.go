package app

import (
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"cluedo/internal/deduce"
	"cluedo/internal/domain"
)

var (
	plum    = domain.NewCard("Professor Plum", domain.KindSuspect)
	library = domain.NewCard("Library", domain.KindRoom)
	hall    = domain.NewCard("Hall", domain.KindRoom)
	rope    = domain.NewCard("Rope", domain.KindWeapon)
	knife   = domain.NewCard("Knife", domain.KindWeapon)
)

func openGuess(t *testing.T, c *Casebook, s, r, w domain.Card) string {
	t.Helper()
	g, err := domain.NewGuess(s, r, w)
	if err != nil {
		t.Fatalf("NewGuess: %v", err)
	}
	key, err := c.Open(g)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return key
}

func countEvents(evs []Event, kind EventKind, key string) int {
	n := 0
	for _, ev := range evs {
		if ev.Kind == kind && ev.Guess == key {
			n++
		}
	}
	return n
}

func TestCasebookReportsDeductions(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	c, err := NewCasebook(4, log)
	if err != nil {
		t.Fatalf("NewCasebook: %v", err)
	}
	a := openGuess(t, c, plum, library, rope)

	evs, err := c.Accept(a, 1, [3]deduce.Cell{deduce.Lacks, deduce.Lacks, deduce.Unknown})
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if len(evs) != 1 || evs[0].Kind != EventCardSolved || !domain.SameHolding(evs[0].Card, rope.WithOwner(1)) {
		t.Fatalf("events = %+v, want Rope solved for witness 1", evs)
	}

	found := false
	for _, e := range hook.AllEntries() {
		if e.Message == "deduced holding" && e.Data["witness"] == 1 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a deduced holding log entry")
	}
}

func TestCasebookFoldsDeductionsAcrossGuesses(t *testing.T) {
	c, _ := NewCasebook(4, nil)
	a := openGuess(t, c, plum, library, rope)
	b := openGuess(t, c, plum, hall, knife)

	if _, err := c.Accept(a, 2, [3]deduce.Cell{}); err != nil {
		t.Fatalf("Accept a: %v", err)
	}
	evs, err := c.Accept(b, 2, [3]deduce.Cell{deduce.Unknown, deduce.Lacks, deduce.Lacks})
	if err != nil {
		t.Fatalf("Accept b: %v", err)
	}
	if countEvents(evs, EventCardSolved, b) != 1 {
		t.Fatalf("events = %+v, want Professor Plum solved in %q", evs, b)
	}

	// Witness 2 now holds Plum in the first guess too, so a new witness there
	// cannot.
	evs, err = c.Accept(a, 3, [3]deduce.Cell{})
	if err != nil {
		t.Fatalf("Accept a: %v", err)
	}
	if countEvents(evs, EventCardStruck, a) != 1 || !domain.SameHolding(evs[0].Card, plum.WithOwner(3)) {
		t.Fatalf("events = %+v, want Professor Plum struck for witness 3", evs)
	}

	out, err := c.Render(a)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out == "" {
		t.Fatal("empty render")
	}
}

func TestCasebookRecordHeldSpreads(t *testing.T) {
	c, _ := NewCasebook(5, nil)
	a := openGuess(t, c, plum, library, rope)
	b := openGuess(t, c, plum, hall, knife)
	for _, key := range []string{a, b} {
		if _, err := c.Accept(key, 1, [3]deduce.Cell{}); err != nil {
			t.Fatalf("Accept %q: %v", key, err)
		}
	}

	evs, err := c.RecordHeld(plum.WithOwner(4))
	if err != nil {
		t.Fatalf("RecordHeld: %v", err)
	}
	if countEvents(evs, EventCardStruck, a) != 1 || countEvents(evs, EventCardStruck, b) != 1 {
		t.Fatalf("events = %+v, want Professor Plum struck in both guesses", evs)
	}

	evs, err = c.RecordLacking(library.WithOwner(1))
	if err != nil {
		t.Fatalf("RecordLacking: %v", err)
	}
	if countEvents(evs, EventCardSolved, a) != 1 {
		t.Fatalf("events = %+v, want Rope solved in %q", evs, a)
	}
	if solved, _ := c.Solved(a); solved {
		t.Fatal("only one owner of the first guess is known")
	}
}

func TestCasebookUniqueRemaining(t *testing.T) {
	c, _ := NewCasebook(3, nil)
	a := openGuess(t, c, plum, library, rope)

	if err := c.Reject(a, 2); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if _, err := c.Accept(a, 1, [3]deduce.Cell{}); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	evs, err := c.Accept(a, 3, [3]deduce.Cell{})
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if countEvents(evs, EventUniqueRemaining, a) != 1 {
		t.Fatalf("events = %+v, want one unique_remaining", evs)
	}
}

func TestCasebookErrors(t *testing.T) {
	if _, err := NewCasebook(1, nil); !errors.Is(err, deduce.ErrInvalidPlayerCount) {
		t.Fatalf("NewCasebook(1): err = %v", err)
	}

	c, _ := NewCasebook(4, nil)
	a := openGuess(t, c, plum, library, rope)

	if _, err := c.Accept("nope", 1, [3]deduce.Cell{}); !errors.Is(err, ErrUnknownGuess) {
		t.Fatalf("Accept unknown: err = %v", err)
	}
	if err := c.Reject("nope", 1); !errors.Is(err, ErrUnknownGuess) {
		t.Fatalf("Reject unknown: err = %v", err)
	}
	if _, err := c.RecordHeld(plum); !errors.Is(err, ErrUnownedCard) {
		t.Fatalf("RecordHeld unowned: err = %v", err)
	}

	if _, err := c.Accept(a, 1, [3]deduce.Cell{deduce.Has, deduce.Unknown, deduce.Unknown}); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	_, err := c.RecordLacking(plum.WithOwner(1))
	var ce *deduce.ContradictionError
	if !errors.As(err, &ce) || ce.Witness != 1 {
		t.Fatalf("RecordLacking: err = %v, want contradiction for witness 1", err)
	}
}

func TestCasebookOpenIsIdempotent(t *testing.T) {
	c, _ := NewCasebook(4, nil)
	a := openGuess(t, c, plum, library, rope)
	again := openGuess(t, c, plum, library, rope)
	if a != again {
		t.Fatalf("keys differ: %q vs %q", a, again)
	}
	if keys := c.Keys(); len(keys) != 1 {
		t.Fatalf("Keys() = %v", keys)
	}
}

func TestCasebookConcurrentCalls(t *testing.T) {
	c, _ := NewCasebook(6, nil)
	a := openGuess(t, c, plum, library, rope)

	var wg sync.WaitGroup
	for w := 0; w < 6; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			if err := c.Reject(a, w); err != nil {
				t.Errorf("Reject(%d): %v", w, err)
			}
			if _, err := c.Render(a); err != nil {
				t.Errorf("Render: %v", err)
			}
		}(w)
	}
	wg.Wait()
}
