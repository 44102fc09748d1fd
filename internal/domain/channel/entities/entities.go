package entities

import "time"

// Channel is the uploader/owner entity a video or subscription belongs to,
// keyed by the stable external channel ID. Channels are never deleted by
// the pipeline; removing a subscription leaves its channel in place.
type Channel struct {
	ID        uint      `gorm:"primaryKey"`
	ChannelID string    `gorm:"column:channel_id;not null;uniqueIndex"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Channel) TableName() string {
	return "channels"
}
