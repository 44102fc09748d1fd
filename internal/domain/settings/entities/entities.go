package entities

import "time"

// Setting is one row of the string-keyed configuration store.
type Setting struct {
	Key       string    `gorm:"primaryKey"`
	Value     string    `gorm:"not null;default:''"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Setting) TableName() string {
	return "settings"
}

// ParametersKey holds the user-editable yt-dlp parameter string.
const ParametersKey = "parameters"
