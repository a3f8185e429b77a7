package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"guessgame/internal/models"
)

// MinuteAverage is one chart bucket: the average cached price over a single
// minute, labelled HH:MI (UTC).
type MinuteAverage struct {
	MinuteLabel   string  `gorm:"column:minute_label" json:"minute_label"`
	AvgPriceCents float64 `gorm:"column:avg_price_cents" json:"-"`
}

// Repository is the persistence surface of the guess game. Methods with a
// Tx suffix run against a transaction handle obtained via InTx; the
// create/resolve flows use them together with GetPlayerForUpdateTx so that
// all lifecycle mutations for one player serialize on the player row.
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Players.
	GetPlayerByExternalID(ctx context.Context, externalID string) (*models.Player, error)
	CreatePlayer(ctx context.Context, item *models.Player) error
	// GetPlayerForUpdateTx locks the player row (SELECT ... FOR UPDATE) for
	// the remainder of the transaction.
	GetPlayerForUpdateTx(tx *gorm.DB, id uint64) (*models.Player, error)
	UpdatePlayerScoreTx(tx *gorm.DB, id uint64, score int) error

	// Price cache (read side plus the collector's append path).
	LatestPriceSample(ctx context.Context) (*models.PriceSample, error)
	InsertPriceSample(ctx context.Context, item *models.PriceSample) error
	ListMinuteAverages(ctx context.Context, limit int) ([]MinuteAverage, error)

	// Guesses. "Active" means resolved_at IS NULL and expires_at > now.
	ActiveGuess(ctx context.Context, playerID uint64, now time.Time) (*models.Guess, error)
	ActiveGuessTx(tx *gorm.DB, playerID uint64, now time.Time) (*models.Guess, error)
	GetGuessTx(tx *gorm.DB, id uint64) (*models.Guess, error)
	InsertGuessTx(tx *gorm.DB, item *models.Guess) error
	MarkGuessVoidTx(tx *gorm.DB, id uint64, resolvedAt time.Time, sampleID uint64) error
	MarkGuessScoredTx(tx *gorm.DB, id uint64, resolvedAt time.Time, correct bool, priceAtResolve int64, sampleID uint64) error
	// ListDueGuesses returns unresolved, unexpired guesses created at or
	// before dueBefore, newest first.
	ListDueGuesses(ctx context.Context, dueBefore, now time.Time, limit int) ([]models.Guess, error)

	// System settings (feature switches).
	GetSystemSettingByKey(ctx context.Context, key string) (*models.SystemSetting, error)
	UpsertSystemSetting(ctx context.Context, item *models.SystemSetting) error
	ListSystemSettings(ctx context.Context) ([]models.SystemSetting, error)
}
