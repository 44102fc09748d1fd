package http

import (
	"github.com/fasthttp/router"
	"github.com/okdewit/ytdlp-docker/internal/domain/settings/deps"
	"github.com/okdewit/ytdlp-docker/pkg/httputil"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

type Handler struct {
	useCase deps.SettingsUseCase
	logger  zerolog.Logger
}

func NewHandler(useCase deps.SettingsUseCase, logger zerolog.Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// RegisterRoutes registers settings routes on the router
func (h *Handler) RegisterRoutes(rt *router.Router) {
	rt.GET("/settings/parameters", h.GetParameters)
	rt.PUT("/settings/parameters", h.SetParameters)
}

func (h *Handler) GetParameters(ctx *fasthttp.RequestCtx) {
	parameters, err := h.useCase.Parameters(ctx)
	if err != nil {
		httputil.WriteError(ctx, err, fasthttp.StatusInternalServerError)
		return
	}

	httputil.WriteResponse(ctx, map[string]string{"parameters": parameters})
}

func (h *Handler) SetParameters(ctx *fasthttp.RequestCtx) {
	value := string(ctx.PostBody())
	if err := h.useCase.SetParameters(ctx, value); err != nil {
		httputil.WriteError(ctx, err, fasthttp.StatusInternalServerError)
		return
	}

	ctx.SetStatusCode(fasthttp.StatusNoContent)
}
