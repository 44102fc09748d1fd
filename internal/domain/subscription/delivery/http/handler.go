package http

import (
	"encoding/json"
	"errors"

	"github.com/fasthttp/router"
	"github.com/okdewit/ytdlp-docker/internal/domain/subscription/deps"
	serrors "github.com/okdewit/ytdlp-docker/internal/domain/subscription/errors"
	"github.com/okdewit/ytdlp-docker/pkg/httputil"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

type Handler struct {
	useCase deps.SubscriptionUseCase
	logger  zerolog.Logger
}

func NewHandler(useCase deps.SubscriptionUseCase, logger zerolog.Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// RegisterRoutes registers subscription routes on the router.
// Subscription URLs contain slashes, so they travel in the body or a
// query argument, never in a path segment.
func (h *Handler) RegisterRoutes(rt *router.Router) {
	rt.POST("/subscriptions", h.Add)
	rt.DELETE("/subscriptions", h.Remove)
	rt.GET("/subscriptions", h.List)
	rt.POST("/subscriptions/sync", h.Sync)
	rt.POST("/sync", h.SyncAll)
}

type addRequest struct {
	URL string `json:"url"`
}

func (h *Handler) Add(ctx *fasthttp.RequestCtx) {
	var req addRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		httputil.WriteErrorResponse(ctx, "invalid JSON body", fasthttp.StatusBadRequest)
		return
	}

	result, err := h.useCase.Add(ctx, req.URL)
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	status := fasthttp.StatusAccepted
	if result.Existing {
		status = fasthttp.StatusOK
	}
	httputil.WriteResponseWithStatus(ctx, result, status)
}

func (h *Handler) Remove(ctx *fasthttp.RequestCtx) {
	url := string(ctx.QueryArgs().Peek("url"))
	if url == "" {
		httputil.WriteErrorResponse(ctx, "url query argument is required", fasthttp.StatusBadRequest)
		return
	}

	if err := h.useCase.Remove(ctx, url); err != nil {
		h.writeError(ctx, err)
		return
	}

	ctx.SetStatusCode(fasthttp.StatusNoContent)
}

func (h *Handler) List(ctx *fasthttp.RequestCtx) {
	views, err := h.useCase.List(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	httputil.WriteResponse(ctx, views)
}

func (h *Handler) Sync(ctx *fasthttp.RequestCtx) {
	url := string(ctx.QueryArgs().Peek("url"))
	if url == "" {
		httputil.WriteErrorResponse(ctx, "url query argument is required", fasthttp.StatusBadRequest)
		return
	}

	if err := h.useCase.Sync(ctx, url); err != nil {
		h.writeError(ctx, err)
		return
	}

	httputil.WriteResponse(ctx, map[string]string{"url": url, "status": "synced"})
}

func (h *Handler) SyncAll(ctx *fasthttp.RequestCtx) {
	report, err := h.useCase.SyncAll(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	httputil.WriteResponse(ctx, report)
}

func (h *Handler) writeError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, serrors.ErrSubscriptionNotFound):
		httputil.WriteError(ctx, err, fasthttp.StatusNotFound)
	case errors.Is(err, serrors.ErrInvalidURL), errors.Is(err, serrors.ErrNotSyncable):
		httputil.WriteError(ctx, err, fasthttp.StatusBadRequest)
	default:
		httputil.WriteError(ctx, err, fasthttp.StatusInternalServerError)
	}
}
