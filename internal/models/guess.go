package models

import "time"

// Guess is one up/down prediction. A guess is "active" while ResolvedAt is
// null and ExpiresAt is in the future; at most one active guess exists per
// player. ResolvedAt is set exactly once. A void resolution (stale feed or
// unchanged price) sets ResolvedAt but leaves IsCorrect and PriceAtResolve
// null.
//
// Direction and IsCorrect use the compact storage encoding (+1/-1 and
// 1/0/NULL); the typed views live in internal/game.
type Guess struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerID uint64 `gorm:"not null;index" json:"playerId"`

	Direction    int16 `gorm:"type:smallint;not null" json:"-"`
	PriceAtGuess int64 `gorm:"not null" json:"priceAtGuess"`

	CreatedAt  time.Time  `gorm:"type:timestamptz;not null;index" json:"createdAt"`
	ExpiresAt  time.Time  `gorm:"type:timestamptz;not null;index" json:"expiresAt"`
	ResolvedAt *time.Time `gorm:"type:timestamptz;index" json:"resolvedAt"`

	IsCorrect      *int16 `gorm:"type:smallint" json:"-"`
	PriceAtResolve *int64 `json:"priceAtResolve"`

	// Links to the samples the guess was opened and settled against.
	PriceSampleIDAtGuess   uint64  `gorm:"not null;index" json:"priceSampleIdAtGuess"`
	PriceSampleIDAtResolve *uint64 `json:"priceSampleIdAtResolve"`
}

func (Guess) TableName() string {
	return "guesses"
}
