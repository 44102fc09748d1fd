package entities

import (
	"time"

	channelentities "github.com/okdewit/ytdlp-docker/internal/domain/channel/entities"
)

// Subscription types. An empty type means the row is provisional and has
// not been enriched yet; TypeUnknown is the terminal failure state.
const (
	TypeUnclassified = ""
	TypeVideo        = "video"
	TypePlaylist     = "playlist"
	TypeChannel      = "channel"
	TypeUnknown      = "unknown"
)

// Subscription is a user-registered URL the system tracks and syncs. The
// URL is the immutable identity; type and channel reference are filled in
// by enrichment.
type Subscription struct {
	ID   uint   `gorm:"primaryKey"`
	URL  string `gorm:"column:url;not null;uniqueIndex"`
	Type string `gorm:"not null;default:''"`

	ChannelID *uint                    `gorm:"column:channel_id"`
	Channel   *channelentities.Channel `gorm:"foreignKey:ChannelID"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
