package game

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"guessgame/internal/config"
	"guessgame/internal/metrics"
	"guessgame/internal/models"
	"guessgame/internal/repository"
)

// Engine owns the guess lifecycle: creating a guess against the latest
// cached price and resolving it against a later one. Both paths run as a
// single transaction that first locks the player row, so concurrent creates
// or concurrent resolves (manual vs poller) for one player serialize and
// the active-guess predicate is re-checked after the lock is held.
type Engine struct {
	Repo   repository.Repository
	Logger *zap.Logger
	Config config.GameConfig

	// Now overrides the clock in tests.
	Now func() time.Time
}

// ResolveResult is the payload of a successful (non-void) resolution.
type ResolveResult struct {
	Player     *models.Player
	WasCorrect bool
	Guess      *models.Guess
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now().UTC()
	}
	return time.Now().UTC()
}

// CreateGuess opens a new guess for the player. The guess snapshots the
// latest cached price and expires after the stale threshold; creation fails
// with ErrActiveGuessExists while an earlier guess is still active.
func (e *Engine) CreateGuess(ctx context.Context, playerID uint64, dir Direction) (*models.Guess, error) {
	sample, err := e.Repo.LatestPriceSample(ctx)
	if err != nil {
		return nil, err
	}
	if sample == nil {
		return nil, ErrPriceUnavailable
	}

	now := e.now()
	var created *models.Guess
	var opErr error
	err = e.Repo.InTx(ctx, func(tx *gorm.DB) error {
		player, err := e.Repo.GetPlayerForUpdateTx(tx, playerID)
		if err != nil {
			return err
		}
		if player == nil {
			return fmt.Errorf("player %d not found", playerID)
		}
		active, err := e.Repo.ActiveGuessTx(tx, playerID, now)
		if err != nil {
			return err
		}
		if active != nil {
			opErr = ErrActiveGuessExists
			return nil
		}
		g := &models.Guess{
			PlayerID:             playerID,
			Direction:            dir.Stored(),
			PriceAtGuess:         sample.PriceCents,
			CreatedAt:            now,
			ExpiresAt:            now.Add(e.Config.StaleThreshold),
			PriceSampleIDAtGuess: sample.ID,
		}
		if err := e.Repo.InsertGuessTx(tx, g); err != nil {
			return err
		}
		created = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	if opErr != nil {
		return nil, opErr
	}

	metrics.GuessesCreated.WithLabelValues(dir.String()).Inc()
	if e.Logger != nil {
		e.Logger.Info("guess created",
			zap.Uint64("guess_id", created.ID),
			zap.Uint64("player_id", playerID),
			zap.String("direction", dir.String()),
			zap.Int64("price_at_guess", created.PriceAtGuess),
		)
	}
	return created, nil
}

// ActiveGuess returns the player's current active guess, or nil if there is
// none. Like the create path it requires a cached price to exist.
func (e *Engine) ActiveGuess(ctx context.Context, playerID uint64) (*models.Guess, error) {
	sample, err := e.Repo.LatestPriceSample(ctx)
	if err != nil {
		return nil, err
	}
	if sample == nil {
		return nil, ErrPriceUnavailable
	}
	return e.Repo.ActiveGuess(ctx, playerID, e.now())
}

// Resolve settles the player's active guess against the latest cached price.
func (e *Engine) Resolve(ctx context.Context, playerID uint64) (*ResolveResult, error) {
	sample, err := e.Repo.LatestPriceSample(ctx)
	if err != nil {
		return nil, err
	}
	return e.ResolveAgainst(ctx, playerID, sample)
}

// ResolveAgainst settles the player's active guess against the given sample.
//
// The active-guess predicate is re-evaluated inside the transaction after
// the player row is locked, so when the manual path and the poller race,
// exactly one of them scores the guess and the loser observes
// ErrNoActiveGuess. A stale or unchanged price consumes the guess as void:
// resolved_at is set (and committed) but the operation reports ErrPriceStale
// and no score changes.
func (e *Engine) ResolveAgainst(ctx context.Context, playerID uint64, sample *models.PriceSample) (*ResolveResult, error) {
	if sample == nil {
		return nil, ErrPriceUnavailable
	}

	now := e.now()
	stale := sample.FetchedAt.Before(now.Add(-e.Config.StaleThreshold))

	var res *ResolveResult
	var opErr error
	err := e.Repo.InTx(ctx, func(tx *gorm.DB) error {
		player, err := e.Repo.GetPlayerForUpdateTx(tx, playerID)
		if err != nil {
			return err
		}
		if player == nil {
			return fmt.Errorf("player %d not found", playerID)
		}
		g, err := e.Repo.ActiveGuessTx(tx, playerID, now)
		if err != nil {
			return err
		}
		if g == nil {
			opErr = ErrNoActiveGuess
			return nil
		}

		// An exactly unchanged price is void, same as a stale feed: the game
		// requires strict movement, never scoring an exact match as a loss.
		if stale || sample.PriceCents == g.PriceAtGuess {
			if err := e.Repo.MarkGuessVoidTx(tx, g.ID, now, sample.ID); err != nil {
				return err
			}
			opErr = ErrPriceStale
			return nil
		}

		dir, ok := DirectionFromStored(g.Direction)
		if !ok {
			return fmt.Errorf("guess %d has invalid direction %d", g.ID, g.Direction)
		}
		correct := (dir == Up && sample.PriceCents > g.PriceAtGuess) ||
			(dir == Down && sample.PriceCents < g.PriceAtGuess)

		if err := e.Repo.MarkGuessScoredTx(tx, g.ID, now, correct, sample.PriceCents, sample.ID); err != nil {
			return err
		}

		score := player.Score + 1
		if !correct {
			score = player.Score - 1
			if score < 0 {
				score = 0
			}
		}
		if err := e.Repo.UpdatePlayerScoreTx(tx, player.ID, score); err != nil {
			return err
		}

		updated, err := e.Repo.GetGuessTx(tx, g.ID)
		if err != nil {
			return err
		}
		player.Score = score
		res = &ResolveResult{Player: player, WasCorrect: correct, Guess: updated}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if opErr != nil {
		if opErr == ErrPriceStale {
			metrics.Resolutions.WithLabelValues(string(OutcomeVoid)).Inc()
		}
		return nil, opErr
	}

	outcome := OutcomeIncorrect
	if res.WasCorrect {
		outcome = OutcomeCorrect
	}
	metrics.Resolutions.WithLabelValues(string(outcome)).Inc()
	if e.Logger != nil {
		e.Logger.Info("guess resolved",
			zap.Uint64("guess_id", res.Guess.ID),
			zap.Uint64("player_id", playerID),
			zap.Bool("was_correct", res.WasCorrect),
			zap.Int("score", res.Player.Score),
		)
	}
	return res, nil
}
