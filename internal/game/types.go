package game

import "guessgame/internal/models"

// Direction is the predicted price movement. The storage layer persists it
// as a signed smallint (+1 up, -1 down); everything above the repository
// speaks this enum.
type Direction int

const (
	Up Direction = iota + 1
	Down
)

func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return Up, true
	case "down":
		return Down, true
	default:
		return 0, false
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Stored returns the smallint encoding used in the guesses table.
func (d Direction) Stored() int16 {
	if d == Down {
		return -1
	}
	return 1
}

func DirectionFromStored(v int16) (Direction, bool) {
	switch v {
	case 1:
		return Up, true
	case -1:
		return Down, true
	default:
		return 0, false
	}
}

// Outcome is the settled state of a guess.
type Outcome string

const (
	OutcomePending   Outcome = "pending"
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
	// OutcomeVoid marks a guess consumed without a win or loss: the feed was
	// stale at resolution time, or the price had not moved at all.
	OutcomeVoid Outcome = "void"
)

// OutcomeOf derives the outcome from the row's resolved_at/is_correct pair.
func OutcomeOf(g *models.Guess) Outcome {
	if g == nil || g.ResolvedAt == nil {
		return OutcomePending
	}
	if g.IsCorrect == nil {
		return OutcomeVoid
	}
	if *g.IsCorrect == 1 {
		return OutcomeCorrect
	}
	return OutcomeIncorrect
}
