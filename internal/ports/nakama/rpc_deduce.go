package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"

	"cluedo/internal/app"
	"cluedo/internal/config"
	"cluedo/internal/deduce"
	"cluedo/internal/domain"
)

type deduceRequest struct {
	Players int            `json:"players"`
	Guesses []guessRequest `json:"guesses"`
	Held    []factRequest  `json:"held"`
	Lacking []factRequest  `json:"lacking"`
}

type guessRequest struct {
	Suspect   string            `json:"suspect"`
	Room      string            `json:"room"`
	Weapon    string            `json:"weapon"`
	Responses []responseRequest `json:"responses"`
}

// responseRequest is one witness answer. Rejected witnesses ignore Values.
type responseRequest struct {
	Witness  int   `json:"witness"`
	Rejected bool  `json:"rejected"`
	Values   []int `json:"values"`
}

type factRequest struct {
	Card    string `json:"card"`
	Witness int    `json:"witness"`
}

type guessResponse struct {
	Key    string `json:"key"`
	Solved bool   `json:"solved"`
	Grid   string `json:"grid"`
}

type deduceResponse struct {
	Events  []eventResponse `json:"events"`
	Guesses []guessResponse `json:"guesses"`
}

// rpcDeduce replays a batch of witness evidence against fresh grids and
// returns everything that could be deduced from it.
//
// Payload: deduceRequest JSON.
// Returns: deduceResponse JSON.
func rpcDeduce(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	var req deduceRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("Invalid payload", errCodeInvalidArgument)
	}
	minPlayers, maxPlayers := config.PlayerLimits()
	if req.Players < minPlayers || req.Players > maxPlayers {
		return "", runtime.NewError(fmt.Sprintf("players must be between %d and %d", minPlayers, maxPlayers), errCodeInvalidArgument)
	}
	if len(req.Guesses) == 0 {
		return "", runtime.NewError("at least one guess is required", errCodeInvalidArgument)
	}

	book, err := app.NewCasebook(req.Players, newBridgeLogger(logger.WithField("user_id", userID), deduceLogLevel))
	if err != nil {
		return "", runtime.NewError(err.Error(), errCodeInvalidArgument)
	}

	events, err := replay(book, config.Deck(), req)
	if err != nil {
		logger.Warn("RpcDeduce [User:%s]: %v", userID, err)
		return "", toRuntimeError(err)
	}

	resp := deduceResponse{Events: toEventResponses(events)}
	for _, key := range book.Keys() {
		grid, err := book.Render(key)
		if err != nil {
			return "", runtime.NewError("Internal error", errCodeInternal)
		}
		solved, _ := book.Solved(key)
		resp.Guesses = append(resp.Guesses, guessResponse{Key: key, Solved: solved, Grid: grid})
	}

	b, err := json.Marshal(resp)
	if err != nil {
		logger.Error("RpcDeduce [User:%s]: marshal response: %v", userID, err)
		return "", runtime.NewError("Internal error", errCodeInternal)
	}
	return string(b), nil
}

// badRequest marks errors caused by the payload rather than the evidence.
type badRequest struct {
	err error
}

func (e badRequest) Error() string { return e.err.Error() }
func (e badRequest) Unwrap() error { return e.err }

func replay(book *app.Casebook, deck *domain.Deck, req deduceRequest) ([]app.Event, error) {
	var events []app.Event
	for _, gr := range req.Guesses {
		guess, err := buildGuess(deck, gr)
		if err != nil {
			return nil, badRequest{err}
		}
		key, err := book.Open(guess)
		if err != nil {
			return nil, badRequest{err}
		}
		for _, r := range gr.Responses {
			if r.Rejected {
				if err := book.Reject(key, r.Witness); err != nil {
					return nil, err
				}
				continue
			}
			cells, err := toCells(r.Values)
			if err != nil {
				return nil, badRequest{fmt.Errorf("witness %d: %w", r.Witness, err)}
			}
			evs, err := book.Accept(key, r.Witness, cells)
			if err != nil {
				return nil, err
			}
			events = append(events, evs...)
		}
	}

	facts := []struct {
		list   []factRequest
		record func(domain.Card) ([]app.Event, error)
	}{
		{req.Held, book.RecordHeld},
		{req.Lacking, book.RecordLacking},
	}
	for _, f := range facts {
		for _, fr := range f.list {
			card, err := lookupCard(deck, fr.Card)
			if err != nil {
				return nil, badRequest{err}
			}
			evs, err := f.record(card.WithOwner(fr.Witness))
			if err != nil {
				return nil, err
			}
			events = append(events, evs...)
		}
	}
	return events, nil
}

func buildGuess(deck *domain.Deck, gr guessRequest) (domain.Guess, error) {
	var cards [domain.SlotCount]domain.Card
	for i, name := range []string{gr.Suspect, gr.Room, gr.Weapon} {
		c, err := lookupCard(deck, name)
		if err != nil {
			return domain.Guess{}, err
		}
		cards[i] = c
	}
	return domain.NewGuess(cards[0], cards[1], cards[2])
}

func toRuntimeError(err error) error {
	var bad badRequest
	switch {
	case errors.As(err, &bad), errors.Is(err, deduce.ErrInvalidCellValue), errors.Is(err, deduce.ErrInvalidSlotKind):
		return runtime.NewError(err.Error(), errCodeInvalidArgument)
	case errors.Is(err, deduce.ErrContradiction), errors.Is(err, deduce.ErrImpossibleState):
		return runtime.NewError(err.Error(), errCodeFailedPrecondition)
	}
	return runtime.NewError("Internal error", errCodeInternal)
}
