package models

import "time"

// Player is created lazily on first authenticated access. ExternalID is the
// identity provider's subject; the score is mutated only by guess resolution
// and never drops below zero.
type Player struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ExternalID string `gorm:"type:varchar(120);not null;uniqueIndex" json:"externalId"`
	Score      int    `gorm:"not null;default:0" json:"score"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updatedAt"`
}

func (Player) TableName() string {
	return "players"
}
