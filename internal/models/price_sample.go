package models

import "time"

// PriceSample is one observation of the upstream BTC/USD price, stored in
// cents. Rows are append-only: the feed collector inserts a new sample only
// when the price or the upstream timestamp changed, so consecutive identical
// samples are never both persisted.
type PriceSample struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	PriceCents int64  `gorm:"not null;index" json:"price"`

	// FetchedAt is when this service observed the value; SourceUpdatedAt is
	// when the upstream source last changed it.
	FetchedAt       time.Time `gorm:"type:timestamptz;not null;index" json:"fetchedAt"`
	SourceUpdatedAt time.Time `gorm:"type:timestamptz;not null;index" json:"sourceUpdatedAt"`
}

func (PriceSample) TableName() string {
	return "price_samples"
}
