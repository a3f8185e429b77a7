package gormrepository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"guessgame/internal/models"
	"guessgame/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- players ----------------------------------------------------------------

func (s *Store) GetPlayerByExternalID(ctx context.Context, externalID string) (*models.Player, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Player
	err := s.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) CreatePlayer(ctx context.Context, item *models.Player) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetPlayerForUpdateTx(tx *gorm.DB, id uint64) (*models.Player, error) {
	if tx == nil {
		return nil, errors.New("nil transaction handle")
	}
	var item models.Player
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpdatePlayerScoreTx(tx *gorm.DB, id uint64, score int) error {
	if tx == nil {
		return errors.New("nil transaction handle")
	}
	return tx.Model(&models.Player{}).
		Where("id = ?", id).
		Update("score", score).Error
}

// --- price cache ------------------------------------------------------------

func (s *Store) LatestPriceSample(ctx context.Context) (*models.PriceSample, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.PriceSample
	err := s.db.WithContext(ctx).
		Order("fetched_at DESC").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) InsertPriceSample(ctx context.Context, item *models.PriceSample) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListMinuteAverages(ctx context.Context, limit int) ([]repository.MinuteAverage, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 15
	}
	var items []repository.MinuteAverage
	err := s.db.WithContext(ctx).
		Model(&models.PriceSample{}).
		Select("TO_CHAR(date_trunc('minute', fetched_at), 'HH24:MI') AS minute_label, AVG(price_cents) AS avg_price_cents").
		Group("date_trunc('minute', fetched_at)").
		Order("date_trunc('minute', fetched_at) DESC").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// --- guesses ----------------------------------------------------------------

func activeGuessQuery(db *gorm.DB, playerID uint64, now time.Time) *gorm.DB {
	return db.
		Where("player_id = ?", playerID).
		Where("resolved_at IS NULL").
		Where("expires_at > ?", now).
		Order("created_at DESC")
}

func (s *Store) ActiveGuess(ctx context.Context, playerID uint64, now time.Time) (*models.Guess, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Guess
	err := activeGuessQuery(s.db.WithContext(ctx), playerID, now).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ActiveGuessTx(tx *gorm.DB, playerID uint64, now time.Time) (*models.Guess, error) {
	if tx == nil {
		return nil, errors.New("nil transaction handle")
	}
	var item models.Guess
	err := activeGuessQuery(tx, playerID, now).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetGuessTx(tx *gorm.DB, id uint64) (*models.Guess, error) {
	if tx == nil {
		return nil, errors.New("nil transaction handle")
	}
	var item models.Guess
	err := tx.Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) InsertGuessTx(tx *gorm.DB, item *models.Guess) error {
	if tx == nil {
		return errors.New("nil transaction handle")
	}
	if item == nil {
		return nil
	}
	return tx.Create(item).Error
}

func (s *Store) MarkGuessVoidTx(tx *gorm.DB, id uint64, resolvedAt time.Time, sampleID uint64) error {
	if tx == nil {
		return errors.New("nil transaction handle")
	}
	// resolved_at IS NULL keeps the write idempotent: a guess is resolved
	// exactly once.
	return tx.Model(&models.Guess{}).
		Where("id = ? AND resolved_at IS NULL", id).
		Updates(map[string]any{
			"resolved_at":                resolvedAt,
			"price_sample_id_at_resolve": sampleID,
		}).Error
}

func (s *Store) MarkGuessScoredTx(tx *gorm.DB, id uint64, resolvedAt time.Time, correct bool, priceAtResolve int64, sampleID uint64) error {
	if tx == nil {
		return errors.New("nil transaction handle")
	}
	isCorrect := int16(0)
	if correct {
		isCorrect = 1
	}
	return tx.Model(&models.Guess{}).
		Where("id = ? AND resolved_at IS NULL", id).
		Updates(map[string]any{
			"resolved_at":                resolvedAt,
			"is_correct":                 isCorrect,
			"price_at_resolve":           priceAtResolve,
			"price_sample_id_at_resolve": sampleID,
		}).Error
}

func (s *Store) ListDueGuesses(ctx context.Context, dueBefore, now time.Time, limit int) ([]models.Guess, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 100
	}
	var items []models.Guess
	err := s.db.WithContext(ctx).
		Where("created_at <= ?", dueBefore).
		Where("resolved_at IS NULL").
		Where("expires_at > ?", now).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// --- system settings --------------------------------------------------------

func (s *Store) GetSystemSettingByKey(ctx context.Context, key string) (*models.SystemSetting, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.SystemSetting
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpsertSystemSetting(ctx context.Context, item *models.SystemSetting) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "description", "updated_at"}),
	}).Create(item).Error
}

func (s *Store) ListSystemSettings(ctx context.Context) ([]models.SystemSetting, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.SystemSetting
	if err := s.db.WithContext(ctx).Order("key asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
