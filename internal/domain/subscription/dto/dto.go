package dto

import (
	"time"

	videodto "github.com/okdewit/ytdlp-docker/internal/domain/video/dto"
)

// Enrichment stage names, emitted as the event type of progress
// notifications. Ordered as the orchestrator walks them.
const (
	StageCreated           = "created"
	StageMetadataFetched   = "metadata_fetched"
	StageTyped             = "typed"
	StageChannelResolved   = "channel_resolved"
	StageContentRegistered = "content_registered"
	StageComplete          = "complete"
	StageFailed            = "failed"
)

// SubscriptionView is the API representation of one subscription,
// optionally carrying the owning channel's registry stats.
type SubscriptionView struct {
	URL         string          `json:"url"`
	Type        string          `json:"type"`
	ChannelID   string          `json:"channel_id,omitempty"`
	ChannelName string          `json:"channel_name,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	Stats       *videodto.Stats `json:"stats,omitempty"`
}

// AddResult reports the outcome of an add request. Enrichment runs off
// the request path, so a fresh add returns with the provisional state.
type AddResult struct {
	URL      string `json:"url"`
	Existing bool   `json:"existing"`
}

// SyncReport summarizes one sweep or single-subscription sync.
type SyncReport struct {
	Attempted int               `json:"attempted"`
	Succeeded int               `json:"succeeded"`
	Skipped   int               `json:"skipped"`
	Failures  map[string]string `json:"failures,omitempty"`
}
