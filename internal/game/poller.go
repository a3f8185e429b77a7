package game

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"guessgame/internal/config"
	"guessgame/internal/metrics"
	"guessgame/internal/repository"
)

// Poller resolves guesses whose resolution window has passed without the
// client calling the manual resolve endpoint. Each cycle picks up to the
// batch cap of due guesses and settles them independently: a failure on one
// guess never aborts the rest, and a cycle-level failure is logged by the
// scheduler and retried next interval.
type Poller struct {
	Repo   repository.Repository
	Engine *Engine
	Logger *zap.Logger
	Config config.GameConfig

	Now func() time.Time
}

func (p *Poller) now() time.Time {
	if p.Now != nil {
		return p.Now().UTC()
	}
	return time.Now().UTC()
}

// RunCycle executes one poll. The buffer keeps the poller from settling a
// guess the client could still resolve inside its natural window.
func (p *Poller) RunCycle(ctx context.Context) error {
	now := p.now()
	dueBefore := now.Add(-(p.Config.ResolutionWindow + p.Config.ResolutionBuffer))

	due, err := p.Repo.ListDueGuesses(ctx, dueBefore, now, p.Config.PollerBatchSize)
	if err != nil {
		metrics.PollerErrors.Inc()
		return err
	}
	metrics.PollerCycles.Inc()
	if len(due) == 0 {
		return nil
	}
	if p.Logger != nil {
		p.Logger.Info("resolving due guesses", zap.Int("count", len(due)))
	}

	for _, g := range due {
		// Fetch the sample per guess: the collector may cache a newer price
		// while the batch is in flight.
		sample, err := p.Repo.LatestPriceSample(ctx)
		if err != nil {
			metrics.PollerErrors.Inc()
			if p.Logger != nil {
				p.Logger.Warn("price lookup failed, skipping guess",
					zap.Uint64("guess_id", g.ID), zap.Error(err))
			}
			continue
		}

		res, err := p.Engine.ResolveAgainst(ctx, g.PlayerID, sample)
		switch {
		case errors.Is(err, ErrNoActiveGuess):
			// The client resolved it manually between the query and the
			// transaction. Not an error.
			if p.Logger != nil {
				p.Logger.Debug("guess no longer active",
					zap.Uint64("guess_id", g.ID))
			}
		case errors.Is(err, ErrPriceStale):
			if p.Logger != nil {
				p.Logger.Info("guess resolved void",
					zap.Uint64("guess_id", g.ID),
					zap.Uint64("player_id", g.PlayerID))
			}
		case errors.Is(err, ErrPriceUnavailable):
			if p.Logger != nil {
				p.Logger.Warn("no price sample, skipping guess",
					zap.Uint64("guess_id", g.ID))
			}
		case err != nil:
			metrics.PollerErrors.Inc()
			if p.Logger != nil {
				p.Logger.Warn("guess resolution failed",
					zap.Uint64("guess_id", g.ID),
					zap.Uint64("player_id", g.PlayerID),
					zap.Error(err))
			}
		default:
			if p.Logger != nil {
				p.Logger.Info("guess resolved by poller",
					zap.Uint64("guess_id", res.Guess.ID),
					zap.Uint64("player_id", g.PlayerID),
					zap.Bool("was_correct", res.WasCorrect))
			}
		}
	}
	return nil
}
