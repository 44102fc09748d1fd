package dto

import "fmt"

// VideoView is the API representation of a registered video.
type VideoView struct {
	VideoID    string `json:"video_id"`
	Title      string `json:"title"`
	Filesize   *int64 `json:"filesize,omitempty"`
	Downloaded bool   `json:"downloaded"`
}

// Stats summarizes a channel's registry against its on-disk state.
type Stats struct {
	Total           int   `json:"total"`
	Downloaded      int   `json:"downloaded"`
	Pending         int   `json:"pending"`
	DownloadedBytes int64 `json:"downloaded_bytes"`
	TotalBytes      int64 `json:"total_bytes"`

	DownloadedHuman string `json:"downloaded_human"`
	TotalHuman      string `json:"total_human"`
}

// DiscoveryResult reports one discovery run over a channel.
type DiscoveryResult struct {
	ChannelID  string `json:"channel_id"`
	Listed     int    `json:"listed"`
	Registered int    `json:"registered"`
	Skipped    int    `json:"skipped"`
	Failed     int    `json:"failed"`
}

// HumanSize renders a byte count the way humans read it, with one
// decimal from KB up.
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
