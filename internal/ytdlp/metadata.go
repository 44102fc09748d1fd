// Package ytdlp wraps the external yt-dlp tool: structured metadata
// resolution, URL classification, downloads and channel avatar lookup.
// The tool's command-line contract is fixed; nothing here re-implements it.
package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ErrResolve is returned when the tool is unreachable, times out, exits
// non-zero or produces output that is not a JSON document.
var ErrResolve = errors.New("ytdlp: metadata resolution failed")

// Thumbnail is one entry of a metadata thumbnails array.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Entry is a single flat-playlist member.
type Entry struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Uploader   string `json:"uploader"`
	UploaderID string `json:"uploader_id"`
	ChannelID  string `json:"channel_id"`
}

// Metadata mirrors the yt-dlp JSON document for a URL. Field presence
// varies wildly between extractors; consumers go through the fallback
// helpers in classify.go instead of reading raw fields ad hoc.
type Metadata struct {
	Type            string      `json:"_type"`
	Extractor       string      `json:"extractor"`
	ExtractorKey    string      `json:"extractor_key"`
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Channel         string      `json:"channel"`
	ChannelID       string      `json:"channel_id"`
	Uploader        string      `json:"uploader"`
	UploaderID      string      `json:"uploader_id"`
	Filesize        *int64      `json:"filesize"`
	FilesizeApprox  *int64      `json:"filesize_approx"`
	AvatarUncropped string      `json:"avatar_uncropped"`
	Thumbnails      []Thumbnail `json:"thumbnails"`
	Entries         []Entry     `json:"entries"`
}

// BestFilesize returns the exact filesize when the extractor reports one,
// falling back to the approximation.
func (m *Metadata) BestFilesize() *int64 {
	if m.Filesize != nil {
		return m.Filesize
	}
	return m.FilesizeApprox
}

// Resolver fetches structured metadata for URLs. It is stateless and does
// not retry; callers decide what a failure means.
type Resolver struct {
	runner          Runner
	metadataTimeout time.Duration
	listingTimeout  time.Duration
	logger          zerolog.Logger
}

func NewResolver(runner Runner, metadataTimeout, listingTimeout time.Duration, logger zerolog.Logger) *Resolver {
	return &Resolver{
		runner:          runner,
		metadataTimeout: metadataTimeout,
		listingTimeout:  listingTimeout,
		logger:          logger,
	}
}

// Fetch retrieves flat (non-expanded) metadata for an arbitrary URL.
func (r *Resolver) Fetch(ctx context.Context, url string) (*Metadata, error) {
	return r.fetch(ctx, r.metadataTimeout, "--flat-playlist", "-J", url)
}

// FetchVideo retrieves detailed metadata for a single video.
func (r *Resolver) FetchVideo(ctx context.Context, videoID string) (*Metadata, error) {
	return r.fetch(ctx, r.metadataTimeout, "-J", WatchURL(videoID))
}

// FetchChannelEntries lists a channel's videos tab without per-video detail.
// Channel listings get a longer timeout than single-URL calls.
func (r *Resolver) FetchChannelEntries(ctx context.Context, channelID string) ([]Entry, error) {
	md, err := r.fetch(ctx, r.listingTimeout, "--flat-playlist", "-J", ChannelVideosURL(channelID))
	if err != nil {
		return nil, err
	}
	return md.Entries, nil
}

func (r *Resolver) fetch(ctx context.Context, timeout time.Duration, args ...string) (*Metadata, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stdout, stderr, err := r.runner.Run(runCtx, args...)
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: timeout after %s", ErrResolve, timeout)
		}
		r.logger.Debug().
			Err(err).
			Str("stderr", string(stderr)).
			Msg("yt-dlp metadata call failed")
		return nil, fmt.Errorf("%w: %v", ErrResolve, err)
	}

	var md Metadata
	if err := json.Unmarshal(stdout, &md); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrResolve, err)
	}

	return &md, nil
}

// WatchURL builds the canonical single-video URL for an external video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// ChannelVideosURL builds the videos-tab URL for an external channel ID.
func ChannelVideosURL(channelID string) string {
	return "https://www.youtube.com/channel/" + channelID + "/videos"
}
