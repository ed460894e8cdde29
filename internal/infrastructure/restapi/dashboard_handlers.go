package restapi

import (
	"errors"
	"net/http"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/app/service"
	"crypto_dashboard/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

const viewerKey = "viewer"

// viewerMiddleware extracts the viewer identity the upstream auth layer
// attaches as headers. An absent identity yields an anonymous viewer, which
// can read public dashboards but not mutate anything.
func viewerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(viewerKey, entity.Viewer{
			UserID:   c.GetHeader("X-User-Id"),
			Username: c.GetHeader("X-Username"),
		})
		c.Next()
	}
}

func viewerFrom(c *gin.Context) entity.Viewer {
	if v, ok := c.Get(viewerKey); ok {
		if viewer, ok := v.(entity.Viewer); ok {
			return viewer
		}
	}
	return entity.Viewer{}
}

// DashboardHandler serves the dashboard render and CRUD routes.
type DashboardHandler struct {
	service   service.DashboardService
	gasClient port.GasClient
	logger    port.Logger
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(svc service.DashboardService, gasClient port.GasClient, logger port.Logger) *DashboardHandler {
	return &DashboardHandler{service: svc, gasClient: gasClient, logger: logger}
}

// RenderDashboardResponse is the render endpoint's payload: the composed
// tree plus the current snapshot of each active provider's shared state.
type RenderDashboardResponse struct {
	entity.RenderedDashboard
	ProviderStates []port.ProviderState `json:"providerStates"`
}

// RenderDashboardHandler handles GET /users/:username/dashboards/:slug.
func (h *DashboardHandler) RenderDashboardHandler(c *gin.Context) {
	ctx := c.Request.Context()
	viewer := viewerFrom(c)

	rendered, err := h.service.RenderDashboard(ctx, viewer, c.Param("username"), c.Param("slug"))
	if err != nil {
		if errors.Is(err, entity.ErrDashboardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "This dashboard doesn't exist."})
			return
		}
		h.logger.Error("render failed", "slug", c.Param("slug"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render dashboard"})
		return
	}

	c.JSON(http.StatusOK, RenderDashboardResponse{
		RenderedDashboard: rendered,
		ProviderStates:    h.service.ProviderStates(rendered.Providers),
	})
}

// ListDashboardsHandler handles GET /users/:username/dashboards.
func (h *DashboardHandler) ListDashboardsHandler(c *gin.Context) {
	dashboards, isOwner, err := h.service.ListDashboards(c.Request.Context(), viewerFrom(c), c.Param("username"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list dashboards"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dashboards": dashboards, "isOwner": isOwner})
}

// CreateDashboardRequest is the create-dashboard payload.
type CreateDashboardRequest struct {
	Slug  string `json:"slug" binding:"required"`
	Title string `json:"title" binding:"required"`
}

// CreateDashboardHandler handles POST /dashboards.
func (h *DashboardHandler) CreateDashboardHandler(c *gin.Context) {
	var req CreateDashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dashboard, err := h.service.CreateDashboard(c.Request.Context(), viewerFrom(c), req.Slug, req.Title)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dashboard)
}

// RenameDashboardRequest is the rename payload.
type RenameDashboardRequest struct {
	Title string `json:"title" binding:"required"`
}

// RenameDashboardHandler handles PATCH /users/:username/dashboards/:slug.
func (h *DashboardHandler) RenameDashboardHandler(c *gin.Context) {
	var req RenameDashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.RenameDashboard(c.Request.Context(), viewerFrom(c), c.Param("username"), c.Param("slug"), req.Title); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateCardRequest is the create-card payload.
type CreateCardRequest struct {
	CardTypeID string              `json:"cardTypeId" binding:"required"`
	Values     []entity.ValueEntry `json:"values"`
	PlaceFirst bool                `json:"placeFirst"`
}

// CreateCardHandler handles POST /users/:username/dashboards/:slug/cards.
func (h *DashboardHandler) CreateCardHandler(c *gin.Context) {
	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card := entity.CardInstance{CardTypeID: req.CardTypeID, Values: req.Values}
	id, err := h.service.CreateCard(c.Request.Context(), viewerFrom(c), c.Param("username"), c.Param("slug"), card, req.PlaceFirst)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// DeleteCardsRequest is the delete payload.
type DeleteCardsRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// DeleteCardsHandler handles DELETE /users/:username/dashboards/:slug/cards.
func (h *DashboardHandler) DeleteCardsHandler(c *gin.Context) {
	var req DeleteCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.DeleteCards(c.Request.Context(), viewerFrom(c), c.Param("username"), c.Param("slug"), req.IDs); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReorderCardsRequest maps card ids to their new xOrder.
type ReorderCardsRequest struct {
	Orders map[string]int `json:"orders" binding:"required"`
}

// ReorderCardsHandler handles POST /users/:username/dashboards/:slug/cards/reorder.
func (h *DashboardHandler) ReorderCardsHandler(c *gin.Context) {
	var req ReorderCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.ReorderCards(c.Request.Context(), viewerFrom(c), c.Param("username"), c.Param("slug"), req.Orders); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GasHandler handles GET /gas/:network for gas_tracker cards.
func (h *DashboardHandler) GasHandler(c *gin.Context) {
	network := c.Param("network")
	suggestion, err := h.gasClient.GasSuggestionFor(c.Request.Context(), network)
	if err != nil {
		h.logger.Warn("gas suggestion failed", "network", network, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch gas price", "network": network})
		return
	}
	c.JSON(http.StatusOK, suggestion)
}

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrDashboardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "dashboard not found"})
	case errors.Is(err, entity.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "not the dashboard owner"})
	case errors.Is(err, entity.ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "slug already in use"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
