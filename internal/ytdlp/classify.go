package ytdlp

// Kind is the semantic type of a subscription URL.
type Kind string

const (
	KindVideo    Kind = "video"
	KindPlaylist Kind = "playlist"
	KindChannel  Kind = "channel"
	KindUnknown  Kind = "unknown"
)

// extractorKinds maps extractor names to kinds when the _type field is
// absent or unhelpful.
var extractorKinds = map[string]Kind{
	"youtube":          KindVideo,
	"youtube:playlist": KindPlaylist,
	"youtube:channel":  KindChannel,
	"youtube:user":     KindChannel,
	"youtube:tab":      KindChannel,
}

// Classify determines the kind of URL the metadata describes.
//
// The order matters: a channel's videos tab is reported with _type
// "playlist" and is only distinguishable from a real playlist by its
// extractor key, so that check comes first.
func Classify(md *Metadata) Kind {
	switch md.Type {
	case "playlist":
		if md.ExtractorKey == "YoutubeTab" || md.ExtractorKey == "YoutubeChannel" {
			return KindChannel
		}
		return KindPlaylist
	case "video":
		return KindVideo
	case "channel", "url_transparent":
		return KindChannel
	}

	if kind, ok := extractorKinds[md.Extractor]; ok {
		return kind
	}

	return KindUnknown
}

// ChannelIdentity is the owning-channel information extracted from metadata.
type ChannelIdentity struct {
	ID   string
	Name string
}

// ChannelInfo extracts channel identity using a fixed fallback order:
// name from channel, then uploader, then title; ID from channel_id, then
// uploader_id. An empty ID means no channel could be resolved.
func ChannelInfo(md *Metadata) ChannelIdentity {
	name := md.Channel
	if name == "" {
		name = md.Uploader
	}
	if name == "" {
		name = md.Title
	}
	if name == "" {
		name = "Unknown Channel"
	}

	id := md.ChannelID
	if id == "" {
		id = md.UploaderID
	}

	return ChannelIdentity{ID: id, Name: name}
}
