package ytdlp

import (
	"github.com/okdewit/ytdlp-docker/config"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

var Module = fx.Module(
	"ytdlp",
	fx.Provide(
		NewRunnerFx,
		NewResolverFx,
		NewDownloaderFx,
		NewAvatarResolverFx,
	),
)

func NewRunnerFx(cfg *config.YtdlpConfig) Runner {
	return NewExecRunner(cfg.BinaryPath)
}

func NewResolverFx(runner Runner, cfg *config.YtdlpConfig, log zerolog.Logger) *Resolver {
	return NewResolver(runner, cfg.MetadataTimeout, cfg.ListingTimeout, log)
}

func NewDownloaderFx(runner Runner, cfg *config.YtdlpConfig, log zerolog.Logger) *Downloader {
	return NewDownloader(runner, cfg.DownloadTimeout, log)
}

func NewAvatarResolverFx(runner Runner, cfg *config.YtdlpConfig, log zerolog.Logger) *AvatarResolver {
	return NewAvatarResolver(runner, cfg.DataDir, cfg.MetadataTimeout, log)
}
