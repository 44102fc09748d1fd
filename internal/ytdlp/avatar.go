package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrNoAvatar is returned when every avatar lookup strategy came up empty.
var ErrNoAvatar = errors.New("ytdlp: no avatar found")

// AvatarResolver fetches a channel's avatar image and stores it as
// poster.jpg under the channel's directory in the data root. All failures
// here are non-fatal to callers; a missing poster is simply absent.
type AvatarResolver struct {
	runner  Runner
	client  *http.Client
	dataDir string
	timeout time.Duration
	logger  zerolog.Logger
}

func NewAvatarResolver(runner Runner, dataDir string, timeout time.Duration, logger zerolog.Logger) *AvatarResolver {
	return &AvatarResolver{
		runner:  runner,
		client:  &http.Client{Timeout: timeout},
		dataDir: dataDir,
		timeout: timeout,
		logger:  logger,
	}
}

// Resolve downloads the channel avatar unless a poster already exists on
// disk. Strategies are tried in order until one yields a URL: direct
// channel info, the about page, then the uploader avatar of a sampled
// video. Returns the poster path.
func (a *AvatarResolver) Resolve(ctx context.Context, channelID, name string) (string, error) {
	cleanName := CleanPathComponent(name)
	posterDir := filepath.Join(a.dataDir, cleanName)
	posterPath := filepath.Join(posterDir, "poster.jpg")

	if _, err := os.Stat(posterPath); err == nil {
		a.logger.Debug().Str("channel", cleanName).Msg("poster already exists")
		return posterPath, nil
	}

	if err := os.MkdirAll(posterDir, 0o755); err != nil {
		return "", fmt.Errorf("create channel directory: %w", err)
	}

	avatarURL := a.fromChannelInfo(ctx, channelID)
	if avatarURL == "" {
		avatarURL = a.fromAboutPage(ctx, channelID)
	}
	if avatarURL == "" {
		avatarURL = a.fromSampledVideo(ctx, channelID)
	}
	if avatarURL == "" {
		return "", ErrNoAvatar
	}

	if err := a.downloadImage(ctx, avatarURL, posterPath); err != nil {
		return "", err
	}

	a.logger.Info().Str("channel", cleanName).Msg("downloaded channel avatar")
	return posterPath, nil
}

func (a *AvatarResolver) fromChannelInfo(ctx context.Context, channelID string) string {
	md, err := a.fetchJSON(ctx,
		"-J", "--flat-playlist", "--playlist-items", "1",
		"https://www.youtube.com/channel/"+channelID)
	if err != nil {
		a.logger.Debug().Err(err).Msg("channel info avatar lookup failed")
		return ""
	}

	if md.AvatarUncropped != "" {
		return md.AvatarUncropped
	}
	return bestAvatarThumbnail(md.Thumbnails)
}

func (a *AvatarResolver) fromAboutPage(ctx context.Context, channelID string) string {
	md, err := a.fetchJSON(ctx,
		"-J", "--no-playlist",
		"https://www.youtube.com/channel/"+channelID+"/about")
	if err != nil {
		a.logger.Debug().Err(err).Msg("about page avatar lookup failed")
		return ""
	}
	return md.AvatarUncropped
}

// videoAvatar is the subset of per-video metadata carrying uploader images.
type videoAvatar struct {
	UploaderAvatar    string `json:"uploader_avatar"`
	ChannelAvatar     string `json:"channel_avatar"`
	UploaderThumbnail string `json:"uploader_thumbnail"`
}

func (a *AvatarResolver) fromSampledVideo(ctx context.Context, channelID string) string {
	listing, err := a.fetchJSON(ctx,
		"-J", "--playlist-items", "1",
		ChannelVideosURL(channelID))
	if err != nil || len(listing.Entries) == 0 || listing.Entries[0].ID == "" {
		return ""
	}

	runCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	stdout, _, err := a.runner.Run(runCtx, "-J", WatchURL(listing.Entries[0].ID))
	if err != nil {
		return ""
	}

	var detail videoAvatar
	if err := json.Unmarshal(stdout, &detail); err != nil {
		return ""
	}

	if detail.UploaderAvatar != "" {
		return detail.UploaderAvatar
	}
	if detail.ChannelAvatar != "" {
		return detail.ChannelAvatar
	}
	return detail.UploaderThumbnail
}

func (a *AvatarResolver) fetchJSON(ctx context.Context, args ...string) (*Metadata, error) {
	runCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	stdout, _, err := a.runner.Run(runCtx, args...)
	if err != nil {
		return nil, err
	}

	var md Metadata
	if err := json.Unmarshal(stdout, &md); err != nil {
		return nil, err
	}
	return &md, nil
}

func (a *AvatarResolver) downloadImage(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build avatar request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch avatar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch avatar: unexpected status %d", resp.StatusCode)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create poster file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(path)
		return fmt.Errorf("write poster file: %w", err)
	}

	return nil
}

// bestAvatarThumbnail picks a square-ish, non-banner thumbnail, preferring
// the highest resolution. Falls back to the smallest thumbnail when nothing
// square is available.
func bestAvatarThumbnail(thumbnails []Thumbnail) string {
	var best Thumbnail
	bestArea := -1
	for _, t := range thumbnails {
		if t.Width <= 0 || t.Height <= 0 {
			continue
		}
		ratio := float64(t.Width) / float64(t.Height)
		if ratio < 0.8 || ratio > 1.25 {
			continue
		}
		if strings.Contains(t.URL, "fcrop64") || strings.Contains(strings.ToLower(t.URL), "banner") {
			continue
		}
		if area := t.Width * t.Height; area > bestArea {
			best = t
			bestArea = area
		}
	}
	if bestArea >= 0 {
		return best.URL
	}

	// No square candidate, settle for the smallest image.
	smallestArea := -1
	for _, t := range thumbnails {
		if area := t.Width * t.Height; smallestArea < 0 || area < smallestArea {
			best = t
			smallestArea = area
		}
	}
	return best.URL
}

// CleanPathComponent makes a display name safe for use as a directory name.
func CleanPathComponent(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	return strings.TrimSpace(name)
}
