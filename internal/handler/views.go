package handler

import (
	"time"

	"guessgame/internal/game"
	"guessgame/internal/models"
)

// guessView is the wire shape of a guess: direction as its enum string and
// the derived outcome instead of the raw smallint columns.
type guessView struct {
	ID             uint64     `json:"id"`
	PlayerID       uint64     `json:"playerId"`
	Direction      string     `json:"direction"`
	Outcome        string     `json:"outcome"`
	PriceAtGuess   int64      `json:"priceAtGuess"`
	PriceAtResolve *int64     `json:"priceAtResolve"`
	CreatedAt      time.Time  `json:"createdAt"`
	ExpiresAt      time.Time  `json:"expiresAt"`
	ResolvedAt     *time.Time `json:"resolvedAt"`
}

func newGuessView(g *models.Guess) guessView {
	dir, _ := game.DirectionFromStored(g.Direction)
	return guessView{
		ID:             g.ID,
		PlayerID:       g.PlayerID,
		Direction:      dir.String(),
		Outcome:        string(game.OutcomeOf(g)),
		PriceAtGuess:   g.PriceAtGuess,
		PriceAtResolve: g.PriceAtResolve,
		CreatedAt:      g.CreatedAt,
		ExpiresAt:      g.ExpiresAt,
		ResolvedAt:     g.ResolvedAt,
	}
}
