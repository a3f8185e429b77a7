package game

import "errors"

// Expected lifecycle outcomes. These are control flow, not failures: the
// handler maps each to a specific HTTP status and the poller logs and moves
// on. Only errors outside this set indicate an infrastructure problem.
var (
	// ErrPriceUnavailable: no price sample has been cached yet (feed
	// cold-start). No guess is created or consumed.
	ErrPriceUnavailable = errors.New("price not available")

	// ErrActiveGuessExists: the player already has an unresolved, unexpired
	// guess. Nothing was inserted.
	ErrActiveGuessExists = errors.New("active guess exists")

	// ErrNoActiveGuess: nothing to resolve. The guess was never created,
	// expired, or another resolver already won the race.
	ErrNoActiveGuess = errors.New("no active guess")

	// ErrPriceStale: the guess was consumed as void. The latest sample was
	// older than the stale threshold, or the price exactly matched the
	// price at guess time. resolved_at is set; the player must start over.
	ErrPriceStale = errors.New("price stale")
)
