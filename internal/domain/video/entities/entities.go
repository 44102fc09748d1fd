package entities

import (
	"time"

	channelentities "github.com/okdewit/ytdlp-docker/internal/domain/channel/entities"
)

// Video is one known video in the registry, keyed by the external video
// ID. Rows record that a video exists; whether it has been downloaded is
// derived from the filesystem, never stored.
type Video struct {
	ID      uint   `gorm:"primaryKey"`
	VideoID string `gorm:"column:video_id;not null;uniqueIndex"`
	Title   string `gorm:"not null"`

	// Filesize is the size reported by the extractor, nil when unknown.
	Filesize *int64 `gorm:"column:filesize"`

	// ChannelID references the internal channels row, nil for orphan
	// videos registered before their channel was known.
	ChannelID *uint                    `gorm:"column:channel_id"`
	Channel   *channelentities.Channel `gorm:"foreignKey:ChannelID"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Video) TableName() string {
	return "videos"
}
