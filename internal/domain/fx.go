package domain

import (
	"github.com/okdewit/ytdlp-docker/internal/domain/channel"
	"github.com/okdewit/ytdlp-docker/internal/domain/settings"
	"github.com/okdewit/ytdlp-docker/internal/domain/subscription"
	"github.com/okdewit/ytdlp-docker/internal/domain/video"
	"go.uber.org/fx"
)

var Module = fx.Options(
	settings.Module,
	channel.Module,
	video.Module,
	subscription.Module,
)
