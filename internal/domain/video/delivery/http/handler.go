package http

import (
	"errors"

	"github.com/fasthttp/router"
	"github.com/okdewit/ytdlp-docker/internal/domain/video/deps"
	verrors "github.com/okdewit/ytdlp-docker/internal/domain/video/errors"
	"github.com/okdewit/ytdlp-docker/pkg/httputil"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

type Handler struct {
	useCase deps.VideoUseCase
	logger  zerolog.Logger
}

func NewHandler(useCase deps.VideoUseCase, logger zerolog.Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// RegisterRoutes registers video routes on the router
func (h *Handler) RegisterRoutes(rt *router.Router) {
	rt.GET("/channels/{channel_id}/videos", h.ListByChannel)
	rt.GET("/channels/{channel_id}/stats", h.StatsForChannel)
	rt.POST("/channels/{channel_id}/discover", h.Discover)
}

func (h *Handler) ListByChannel(ctx *fasthttp.RequestCtx) {
	channelID, _ := ctx.UserValue("channel_id").(string)

	videos, err := h.useCase.ListByChannel(ctx, channelID)
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	httputil.WriteResponse(ctx, videos)
}

func (h *Handler) StatsForChannel(ctx *fasthttp.RequestCtx) {
	channelID, _ := ctx.UserValue("channel_id").(string)

	stats, err := h.useCase.StatsForChannel(ctx, channelID)
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	httputil.WriteResponse(ctx, stats)
}

func (h *Handler) Discover(ctx *fasthttp.RequestCtx) {
	channelID, _ := ctx.UserValue("channel_id").(string)

	result, err := h.useCase.Discover(ctx, channelID)
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	httputil.WriteResponse(ctx, result)
}

func (h *Handler) writeError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, verrors.ErrChannelNotFound):
		httputil.WriteError(ctx, err, fasthttp.StatusNotFound)
	case errors.Is(err, verrors.ErrListingFailed):
		httputil.WriteError(ctx, err, fasthttp.StatusBadGateway)
	default:
		httputil.WriteError(ctx, err, fasthttp.StatusInternalServerError)
	}
}
